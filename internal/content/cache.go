package content

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
)

// DefaultRefreshInterval is how long live content stays fresh.
const DefaultRefreshInterval = 24 * time.Hour

var errNoCompleter = errors.New("no completion service")

// Options configures a Cache.
type Options struct {
	Completer       service.CompletionService
	State           StateStore
	Logger          *slog.Logger
	Now             func() time.Time
	RefreshInterval time.Duration
}

// Cache serves generated content for one student.
type Cache struct {
	completer service.CompletionService
	state     StateStore
	logger    *slog.Logger
	now       func() time.Time
	entries   map[model.ContentKind]model.CachedContent
	group     singleflight.Group
	interval  time.Duration
	mu        sync.Mutex
	saveMu    sync.Mutex
	loaded    bool
}

// NewCache creates a cache. A nil completer makes every refresh fall back.
func NewCache(opts Options) *Cache {
	if opts.State == nil {
		opts.State = &MemoryState{}
	}
	if opts.Logger == nil {
		opts.Logger = common.DiscardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	return &Cache{
		completer: opts.Completer,
		state:     opts.State,
		logger:    opts.Logger,
		now:       opts.Now,
		interval:  opts.RefreshInterval,
		entries:   map[model.ContentKind]model.CachedContent{},
	}
}

// Get returns the content of kind. Fresh cached content is returned without
// a network call unless force is set. The result is never empty.
func (c *Cache) Get(ctx context.Context, kind model.ContentKind, cctx Context, force bool) []model.Item {
	spec, ok := specFor(kind)
	if !ok {
		c.logger.Warn("unknown content kind", "kind", kind)
		return Fallback(kind, cctx)
	}

	c.ensureLoaded(ctx)
	if !force {
		if items, ok := c.fresh(kind, spec); ok {
			return items
		}
	}

	v, _, _ := c.group.Do(string(kind), func() (any, error) {
		if !force {
			if items, ok := c.fresh(kind, spec); ok {
				return items, nil
			}
		}
		return c.refresh(context.WithoutCancel(ctx), kind, spec, cctx), nil
	})
	return copyItems(v.([]model.Item))
}

// Peek returns the cached entry of kind without refreshing it.
func (c *Cache) Peek(ctx context.Context, kind model.ContentKind) (model.CachedContent, bool) {
	c.ensureLoaded(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[kind]
	if !ok {
		return model.CachedContent{}, false
	}
	entry.Items = copyItems(entry.Items)
	return entry, true
}

// RefreshAll refreshes every general kind concurrently. progress, when set,
// is called once per finished kind and must be safe for concurrent use.
func (c *Cache) RefreshAll(ctx context.Context, cctx Context, force bool, progress func(model.ContentKind)) map[model.ContentKind][]model.Item {
	results := make([][]model.Item, len(model.GeneralKinds))

	var g errgroup.Group
	for i, kind := range model.GeneralKinds {
		g.Go(func() error {
			results[i] = c.Get(ctx, kind, cctx, force)
			if progress != nil {
				progress(kind)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[model.ContentKind][]model.Item, len(results))
	for i, kind := range model.GeneralKinds {
		out[kind] = results[i]
	}
	return out
}

func (c *Cache) fresh(kind model.ContentKind, spec kindSpec) ([]model.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[kind]
	if !ok || entry.LastUpdated == nil {
		return nil, false
	}
	if c.now().Sub(*entry.LastUpdated) >= c.interval {
		return nil, false
	}
	if !validItems(entry.Items, spec.fields) {
		return nil, false
	}
	return copyItems(entry.Items), true
}

func (c *Cache) refresh(ctx context.Context, kind model.ContentKind, spec kindSpec, cctx Context) []model.Item {
	now := c.now()
	items, err := c.fetch(ctx, spec, cctx, now)

	entry := model.CachedContent{Items: items, LastUpdated: &now}
	if err != nil {
		c.logger.Warn("using built-in content", "kind", kind, "error", err)
		// built-in content is never fresh so the next check retries the live path
		entry = model.CachedContent{Items: Fallback(kind, cctx)}
	}

	c.mu.Lock()
	c.entries[kind] = entry
	c.mu.Unlock()

	c.persist(ctx)
	return copyItems(entry.Items)
}

func (c *Cache) fetch(ctx context.Context, spec kindSpec, cctx Context, now time.Time) ([]model.Item, error) {
	if c.completer == nil {
		return nil, errNoCompleter
	}
	system, user := buildPrompt(spec, cctx, now.Year())
	text, err := c.completer.Complete(ctx, service.CompletionRequest{
		SystemPrompt: system,
		UserPrompt:   user,
	})
	if err != nil {
		return nil, err
	}
	return ParseItems(text, spec.fields)
}

func (c *Cache) ensureLoaded(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return
	}
	c.loaded = true

	stored, err := c.state.Load(ctx)
	if err != nil {
		c.logger.Warn("failed to load cached content", "error", err)
		return
	}
	for kind, entry := range stored {
		spec, ok := specFor(kind)
		if !ok || !validItems(entry.Items, spec.fields) {
			c.logger.Debug("dropping invalid cached content", "kind", kind)
			continue
		}
		c.entries[kind] = entry
	}
}

func (c *Cache) persist(ctx context.Context) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	snapshot := make(map[model.ContentKind]model.CachedContent, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	c.mu.Unlock()

	if err := c.state.Save(ctx, snapshot); err != nil {
		c.logger.Warn("failed to persist cached content", "error", err)
	}
}
