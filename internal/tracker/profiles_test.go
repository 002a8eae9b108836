package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/testutil"
)

func TestNewRejectsInvalidStudentID(t *testing.T) {
	store := testutil.NewFileStore(t)
	for _, id := range []string{"", "../etc", "a b", "-lead"} {
		_, err := New(store, id)
		assert.ErrorIs(t, err, common.ErrInvalidInput, id)
	}
}

func TestProfilesLifecycle(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFileStore(t)
	now := fixedNow
	changed := 0
	profiles := NewProfiles(store,
		WithClock(func() time.Time { return now }),
		WithChangeHook(func(string) { changed++ }),
	)

	_, found, err := profiles.Load(ctx, "asha")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "asha", profiles.DisplayName(ctx, "asha"))

	saved, err := profiles.Save(ctx, model.Profile{StudentID: "asha", FullName: "Asha Rao", Degree: "B.Tech"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	assert.Equal(t, "College", saved.CollegeName)
	assert.Equal(t, "1st Year", saved.YearOfStudy)
	assert.Equal(t, "light", saved.Preferences.Theme)

	now = now.Add(time.Hour)
	resaved, err := profiles.Save(ctx, model.Profile{StudentID: "asha", FullName: "Asha R", YearOfStudy: "3rd Year"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, resaved.CreatedAt)

	loaded, found, err := profiles.Load(ctx, "asha")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Asha R", loaded.FullName)
	assert.Equal(t, "Degree", loaded.Degree)
	assert.Equal(t, "Asha R", profiles.DisplayName(ctx, "asha"))

	updated, err := profiles.UpdatePreferences(ctx, "asha", func(p *model.Preferences) { p.Theme = "dark" })
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Preferences.Theme)
	assert.True(t, updated.Preferences.NotificationsEnabled)

	require.NoError(t, profiles.Touch(ctx, "asha"))
	loaded, _, err = profiles.Load(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, now, loaded.LastLogin)

	_, err = profiles.Save(ctx, model.Profile{StudentID: "ravi"})
	require.NoError(t, err)
	ids, err := profiles.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"asha", "ravi"}, ids)

	student, err := New(store, "asha")
	require.NoError(t, err)
	_, err = student.Finance.AddTransaction(ctx, model.Transaction{Amount: -50})
	require.NoError(t, err)

	require.NoError(t, profiles.Delete(ctx, "asha"))
	ids, err = profiles.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ravi"}, ids)
	txns, err := student.Finance.Transactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txns)

	assert.Equal(t, 5, changed)
}

func TestProfilesSaveValidates(t *testing.T) {
	profiles := NewProfiles(testutil.NewFileStore(t))

	_, err := profiles.Save(context.Background(), model.Profile{StudentID: "bad id"})
	require.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = profiles.Save(context.Background(), model.Profile{StudentID: "asha", Email: "not-an-email"})
	require.ErrorIs(t, err, model.ErrValidation)
}
