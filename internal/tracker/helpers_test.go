package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/testutil"
)

var fixedNow = time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC)

type fixture struct {
	student *Student
	changes []string
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: fixedNow}
	student, err := New(testutil.NewFileStore(t), "asha",
		WithClock(func() time.Time { return f.now }),
		WithChangeHook(func(id string) { f.changes = append(f.changes, id) }),
	)
	require.NoError(t, err)
	f.student = student
	return f
}
