package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
)

// documentLocks serializes read-modify-write cycles on one document within
// the process.
var documentLocks sync.Map

func lockFor(subject, namespace, key string) *sync.Mutex {
	mu, _ := documentLocks.LoadOrStore(namespace+"/"+subject+"/"+key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Collection is a typed list of records stored as one document.
type Collection[T any, PT interface {
	*T
	model.Record
}] struct {
	store     service.DocumentStore
	now       func() time.Time
	subject   string
	namespace string
	key       string
}

// NewCollection binds a collection to one (subject, namespace, key) document.
func NewCollection[T any, PT interface {
	*T
	model.Record
}](store service.DocumentStore, subject, namespace, key string) *Collection[T, PT] {
	return &Collection[T, PT]{
		store:     store,
		subject:   subject,
		namespace: namespace,
		key:       key,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to stamp created_at.
func (c *Collection[T, PT]) WithClock(now func() time.Time) *Collection[T, PT] {
	c.now = now
	return c
}

// List returns every record, or an empty slice when the document is absent.
func (c *Collection[T, PT]) List(ctx context.Context) ([]T, error) {
	var records []T
	if _, err := c.store.Get(ctx, c.subject, c.namespace, c.key, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Find returns the record with the given id.
func (c *Collection[T, PT]) Find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	records, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, rec := range records {
		if PT(&rec).RecordID() == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Add validates rec, assigns an id and created_at when missing and appends it.
func (c *Collection[T, PT]) Add(ctx context.Context, rec T) (T, error) {
	added, err := c.AddMany(ctx, []T{rec})
	if err != nil {
		var zero T
		return zero, err
	}
	return added[0], nil
}

// AddMany appends several records in one write.
func (c *Collection[T, PT]) AddMany(ctx context.Context, recs []T) ([]T, error) {
	now := c.now()
	prepared := make([]T, 0, len(recs))
	for _, rec := range recs {
		p := PT(&rec)
		if p.RecordID() == "" {
			p.SetRecordID(model.NewID())
		}
		if p.CreatedTime().IsZero() {
			p.SetCreatedAt(now)
		}
		if err := model.Validate(p); err != nil {
			return nil, err
		}
		prepared = append(prepared, rec)
	}

	mu := lockFor(c.subject, c.namespace, c.key)
	mu.Lock()
	defer mu.Unlock()

	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	records = append(records, prepared...)
	if err := c.store.Put(ctx, c.subject, c.namespace, c.key, records); err != nil {
		return nil, err
	}
	return prepared, nil
}

// Edit replaces the whole list with the result of fn under the document
// lock. New records get an id and created_at; every record is validated.
func (c *Collection[T, PT]) Edit(ctx context.Context, fn func(records []T) ([]T, error)) ([]T, error) {
	mu := lockFor(c.subject, c.namespace, c.key)
	mu.Lock()
	defer mu.Unlock()

	records, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err = fn(records)
	if err != nil {
		return nil, err
	}

	now := c.now()
	for i := range records {
		p := PT(&records[i])
		if p.RecordID() == "" {
			p.SetRecordID(model.NewID())
		}
		if p.CreatedTime().IsZero() {
			p.SetCreatedAt(now)
		}
		if err := model.Validate(p); err != nil {
			return nil, err
		}
	}
	if err := c.store.Put(ctx, c.subject, c.namespace, c.key, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Update applies a partial update: only the JSON fields named in patch change.
// The id field cannot be patched. A missing record reports false.
func (c *Collection[T, PT]) Update(ctx context.Context, id string, patch map[string]any) (bool, error) {
	return c.Mutate(ctx, id, func(rec *T) error {
		current, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		fields := map[string]any{}
		if err := json.Unmarshal(current, &fields); err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}
		for k, v := range patch {
			if k == "id" {
				continue
			}
			fields[k] = v
		}
		merged, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to encode patch: %w", err)
		}
		var updated T
		if err := json.Unmarshal(merged, &updated); err != nil {
			return fmt.Errorf("%w: %v", model.ErrValidation, err)
		}
		*rec = updated
		return nil
	})
}

// Mutate loads the record with the given id, lets fn modify it and saves the
// collection. A missing record reports false and fn is not called.
func (c *Collection[T, PT]) Mutate(ctx context.Context, id string, fn func(*T) error) (bool, error) {
	mu := lockFor(c.subject, c.namespace, c.key)
	mu.Lock()
	defer mu.Unlock()

	records, err := c.List(ctx)
	if err != nil {
		return false, err
	}

	for i := range records {
		p := PT(&records[i])
		if p.RecordID() != id {
			continue
		}
		if err := fn(&records[i]); err != nil {
			return false, err
		}
		p.SetRecordID(id)
		if err := model.Validate(p); err != nil {
			return false, err
		}
		if err := c.store.Put(ctx, c.subject, c.namespace, c.key, records); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes the record with the given id. A missing record reports false.
func (c *Collection[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	mu := lockFor(c.subject, c.namespace, c.key)
	mu.Lock()
	defer mu.Unlock()

	records, err := c.List(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(records))
	found := false
	for _, rec := range records {
		if PT(&rec).RecordID() == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return false, nil
	}
	if err := c.store.Put(ctx, c.subject, c.namespace, c.key, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Document is a typed singleton document with a default value.
type Document[T any] struct {
	store     service.DocumentStore
	defaults  func() T
	subject   string
	namespace string
	key       string
}

// NewDocument binds a singleton document. defaults supplies the value
// returned when nothing has been stored yet.
func NewDocument[T any](store service.DocumentStore, subject, namespace, key string, defaults func() T) *Document[T] {
	if defaults == nil {
		defaults = func() T {
			var zero T
			return zero
		}
	}
	return &Document[T]{
		store:     store,
		defaults:  defaults,
		subject:   subject,
		namespace: namespace,
		key:       key,
	}
}

// Load returns the stored value or the default.
func (d *Document[T]) Load(ctx context.Context) (T, bool, error) {
	v := d.defaults()
	found, err := d.store.Get(ctx, d.subject, d.namespace, d.key, &v)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if !found {
		return d.defaults(), false, nil
	}
	return v, true, nil
}

// Save overwrites the stored value.
func (d *Document[T]) Save(ctx context.Context, v T) error {
	return d.store.Put(ctx, d.subject, d.namespace, d.key, v)
}

// Update loads the value, applies fn and saves the result.
func (d *Document[T]) Update(ctx context.Context, fn func(*T) error) (T, error) {
	mu := lockFor(d.subject, d.namespace, d.key)
	mu.Lock()
	defer mu.Unlock()

	v, _, err := d.Load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := fn(&v); err != nil {
		var zero T
		return zero, err
	}
	if err := d.Save(ctx, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
