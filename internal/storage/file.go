package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Veraticus/harmony/internal/common"
)

// FileStore keeps each document as an indented JSON file at
// <root>/<namespace>/<subject>/<key>.json.
type FileStore struct {
	root string
	mu   sync.RWMutex
}

// NewFileStore creates the root directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := validateString(root, "root"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Root returns the data directory.
func (s *FileStore) Root() string { return s.root }

func (s *FileStore) path(subject, namespace, key string) string {
	return filepath.Join(s.root, namespace, subject, key+".json")
}

// Get implements service.DocumentStore.
func (s *FileStore) Get(ctx context.Context, subject, namespace, key string, dest any) (bool, error) {
	if err := validateAddress(ctx, subject, namespace, key); err != nil {
		return false, err
	}
	if dest == nil {
		return false, fmt.Errorf("%w: dest", ErrNilParameter)
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path(subject, namespace, key))
	s.mu.RUnlock()

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s/%s/%s: %w", namespace, subject, key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: %s/%s/%s: %v", common.ErrCorruptDocument, namespace, subject, key, err)
	}
	return true, nil
}

// Put implements service.DocumentStore. The write goes to a temporary file
// that is renamed over the target.
func (s *FileStore) Put(ctx context.Context, subject, namespace, key string, doc any) error {
	if err := validateAddress(ctx, subject, namespace, key); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", namespace, key, err)
	}

	target := s.path(subject, namespace, key)
	dir := filepath.Dir(target)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}

// Subjects implements service.DocumentStore.
func (s *FileStore) Subjects(ctx context.Context, namespace, key string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSegment(namespace, "namespace"); err != nil {
		return nil, err
	}
	if err := validateSegment(key, "key"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.root, namespace))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", namespace, err)
	}

	subjects := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(s.path(entry.Name(), namespace, key)); err == nil {
			subjects = append(subjects, entry.Name())
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

// DeleteSubject implements service.DocumentStore.
func (s *FileStore) DeleteSubject(ctx context.Context, subject string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSegment(subject, "subject"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	namespaces, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("failed to list data directory: %w", err)
	}
	for _, ns := range namespaces {
		if !ns.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, ns.Name(), subject)); err != nil {
			return fmt.Errorf("failed to delete %s/%s: %w", ns.Name(), subject, err)
		}
	}
	return nil
}

// Close implements service.DocumentStore.
func (s *FileStore) Close() error { return nil }
