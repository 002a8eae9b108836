package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/llm"
	"github.com/Veraticus/harmony/internal/testutil"
)

const resourcesReply = `[{"name":"MIT OpenCourseWare","type":"Online Courses","website":"https://ocw.mit.edu/"}]`

func TestResourceFinderCachesLiveResults(t *testing.T) {
	completer := testutil.NewFakeCompleter(testutil.Reply{Text: resourcesReply})
	finder := NewResourceFinder(completer, nil)
	ctx := context.Background()

	first := finder.Find(ctx, "  Linear Algebra ", Context{})
	second := finder.Find(ctx, "linear algebra", Context{})

	require.Len(t, first, 1)
	assert.Equal(t, "MIT OpenCourseWare", first[0]["name"])
	assert.Equal(t, first, second)
	assert.Equal(t, 1, completer.Calls())

	finder.Clear()
	finder.Find(ctx, "linear algebra", Context{})
	assert.Equal(t, 2, completer.Calls())
}

func TestResourceFinderFallbackIsNotCached(t *testing.T) {
	completer := testutil.NewFakeCompleter(
		testutil.Reply{Err: llm.ErrTransport},
		testutil.Reply{Text: resourcesReply},
	)
	finder := NewResourceFinder(completer, nil)
	ctx := context.Background()

	items := finder.Find(ctx, "mathematics", Context{})
	assert.Equal(t, "NPTEL Mathematics Courses", items[0]["name"])

	items = finder.Find(ctx, "mathematics", Context{})
	assert.Equal(t, "MIT OpenCourseWare", items[0]["name"])
	assert.Equal(t, 2, completer.Calls())
}

func TestResourceFinderEmptyQuery(t *testing.T) {
	completer := testutil.NewFakeCompleter()
	finder := NewResourceFinder(completer, nil)

	items := finder.Find(context.Background(), "   ", Context{})
	assert.Equal(t, "Swayam Portal", items[0]["name"])
	assert.Zero(t, completer.Calls())
}
