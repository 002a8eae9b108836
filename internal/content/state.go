package content

import (
	"context"
	"sync"

	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
)

// StateKey is the resources-namespace document holding persisted content.
const StateKey = "content_cache"

// StateStore persists the cached content of one student.
type StateStore interface {
	Load(ctx context.Context) (map[model.ContentKind]model.CachedContent, error)
	Save(ctx context.Context, entries map[model.ContentKind]model.CachedContent) error
}

// MemoryState keeps content in memory only.
type MemoryState struct {
	entries map[model.ContentKind]model.CachedContent
	mu      sync.Mutex
}

// Load returns a copy of the saved entries.
func (m *MemoryState) Load(context.Context) (map[model.ContentKind]model.CachedContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[model.ContentKind]model.CachedContent, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

// Save replaces the saved entries.
func (m *MemoryState) Save(_ context.Context, entries map[model.ContentKind]model.CachedContent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[model.ContentKind]model.CachedContent, len(entries))
	for k, v := range entries {
		m.entries[k] = v
	}
	return nil
}

// DocumentState persists content in a student's resources namespace.
type DocumentState struct {
	store   service.DocumentStore
	subject string
}

// NewDocumentState binds content persistence to one student.
func NewDocumentState(store service.DocumentStore, subject string) *DocumentState {
	return &DocumentState{store: store, subject: subject}
}

// Load reads the persisted entries; a missing document yields an empty map.
func (d *DocumentState) Load(ctx context.Context) (map[model.ContentKind]model.CachedContent, error) {
	entries := map[model.ContentKind]model.CachedContent{}
	if _, err := d.store.Get(ctx, d.subject, service.NamespaceResources, StateKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save writes every entry.
func (d *DocumentState) Save(ctx context.Context, entries map[model.ContentKind]model.CachedContent) error {
	return d.store.Put(ctx, d.subject, service.NamespaceResources, StateKey, entries)
}
