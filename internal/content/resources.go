package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
)

var resourceFields = []string{"name", "type", "website"}

// ResourceFinder answers free-text learning resource searches. Live answers
// are cached per normalized query until Clear; built-in answers are not.
type ResourceFinder struct {
	completer service.CompletionService
	logger    *slog.Logger
	results   map[string][]model.Item
	group     singleflight.Group
	mu        sync.RWMutex
}

// NewResourceFinder creates a finder. A nil completer always falls back to
// the subject catalog.
func NewResourceFinder(completer service.CompletionService, logger *slog.Logger) *ResourceFinder {
	if logger == nil {
		logger = common.DiscardLogger()
	}
	return &ResourceFinder{
		completer: completer,
		logger:    logger,
		results:   map[string][]model.Item{},
	}
}

// Find returns resources for query. The result is never empty.
func (f *ResourceFinder) Find(ctx context.Context, query string, cctx Context) []model.Item {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return SubjectResources("")
	}

	f.mu.RLock()
	cached, ok := f.results[key]
	f.mu.RUnlock()
	if ok {
		return copyItems(cached)
	}

	v, _, _ := f.group.Do(key, func() (any, error) {
		items, err := f.fetch(context.WithoutCancel(ctx), key, cctx)
		if err != nil {
			f.logger.Warn("using built-in resources", "query", key, "error", err)
			return SubjectResources(key), nil
		}
		f.mu.Lock()
		f.results[key] = items
		f.mu.Unlock()
		return items, nil
	})
	return copyItems(v.([]model.Item))
}

// Clear drops every cached search.
func (f *ResourceFinder) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = map[string][]model.Item{}
}

func (f *ResourceFinder) fetch(ctx context.Context, query string, cctx Context) ([]model.Item, error) {
	if f.completer == nil {
		return nil, errNoCompleter
	}
	prompt := fmt.Sprintf(
		"Suggest 3 free, high-quality online learning resources for studying %s for %s. "+
			"Format as a JSON list of dictionaries with keys 'name', 'type' and 'website'. Respond with the JSON list only.",
		query, cctx.describe(),
	)
	text, err := f.completer.Complete(ctx, service.CompletionRequest{
		SystemPrompt: "You're an educational resource curator for Indian students.",
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, err
	}
	return ParseItems(text, resourceFields)
}
