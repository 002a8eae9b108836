package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDoc struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func createFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func createSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func backends(t *testing.T) map[string]func(t *testing.T) service.DocumentStore {
	t.Helper()
	stores := map[string]func(t *testing.T) service.DocumentStore{
		"file":   func(t *testing.T) service.DocumentStore { return createFileStore(t) },
		"sqlite": func(t *testing.T) service.DocumentStore { return createSQLiteStore(t) },
	}
	if addr := os.Getenv("HARMONY_TEST_REDIS_ADDR"); addr != "" {
		stores["redis"] = func(t *testing.T) service.DocumentStore {
			store, err := NewRedisStore(context.Background(), RedisConfig{
				Addr:   addr,
				Prefix: "harmony-test-" + uuid.NewString(),
			})
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			return store
		}
	}
	return stores
}

func TestDocumentStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("missing document", func(t *testing.T) {
				store := open(t)
				var doc sampleDoc
				found, err := store.Get(ctx, "alice", service.NamespaceAcademic, "courses", &doc)
				require.NoError(t, err)
				assert.False(t, found)
			})

			t.Run("put then get", func(t *testing.T) {
				store := open(t)
				want := sampleDoc{Name: "notes", Tags: []string{"a", "b"}, Count: 3}
				require.NoError(t, store.Put(ctx, "alice", service.NamespaceAcademic, "courses", want))

				var got sampleDoc
				found, err := store.Get(ctx, "alice", service.NamespaceAcademic, "courses", &got)
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, want, got)
			})

			t.Run("last write wins", func(t *testing.T) {
				store := open(t)
				require.NoError(t, store.Put(ctx, "alice", service.NamespaceFinancial, "budget", map[string]float64{"Food": 100}))
				require.NoError(t, store.Put(ctx, "alice", service.NamespaceFinancial, "budget", map[string]float64{"Rent": 500}))

				var got map[string]float64
				_, err := store.Get(ctx, "alice", service.NamespaceFinancial, "budget", &got)
				require.NoError(t, err)
				assert.Equal(t, map[string]float64{"Rent": 500}, got)
			})

			t.Run("subjects and delete", func(t *testing.T) {
				store := open(t)
				for _, subject := range []string{"carol", "alice", "bob"} {
					require.NoError(t, store.Put(ctx, subject, service.NamespaceProfile, "profile", sampleDoc{Name: subject}))
				}
				require.NoError(t, store.Put(ctx, "alice", service.NamespaceWellness, "mood_entries", []sampleDoc{}))

				subjects, err := store.Subjects(ctx, service.NamespaceProfile, "profile")
				require.NoError(t, err)
				assert.Equal(t, []string{"alice", "bob", "carol"}, subjects)

				require.NoError(t, store.DeleteSubject(ctx, "alice"))

				subjects, err = store.Subjects(ctx, service.NamespaceProfile, "profile")
				require.NoError(t, err)
				assert.Equal(t, []string{"bob", "carol"}, subjects)

				var docs []sampleDoc
				found, err := store.Get(ctx, "alice", service.NamespaceWellness, "mood_entries", &docs)
				require.NoError(t, err)
				assert.False(t, found)
			})

			t.Run("rejects unsafe segments", func(t *testing.T) {
				store := open(t)
				err := store.Put(ctx, "../escape", service.NamespaceProfile, "profile", sampleDoc{})
				require.ErrorIs(t, err, ErrInvalidSegment)

				_, err = store.Get(ctx, "alice", "", "profile", &sampleDoc{})
				require.ErrorIs(t, err, ErrEmptyString)
			})
		})
	}
}

func TestFileStoreLayoutAndCorruption(t *testing.T) {
	ctx := context.Background()
	store := createFileStore(t)

	require.NoError(t, store.Put(ctx, "alice", service.NamespaceAcademic, "tasks", []sampleDoc{{Name: "essay"}}))

	path := filepath.Join(store.Root(), "academic", "alice", "tasks.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	var docs []sampleDoc
	_, err = store.Get(ctx, "alice", service.NamespaceAcademic, "tasks", &docs)
	require.ErrorIs(t, err, common.ErrCorruptDocument)
}

func TestSQLiteStoreVersions(t *testing.T) {
	ctx := context.Background()
	store := createSQLiteStore(t)

	version, err := store.Version(ctx, "alice", service.NamespaceCareer, "skills")
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Put(ctx, "alice", service.NamespaceCareer, "skills", []sampleDoc{{Count: i}}))
	}

	version, err = store.Version(ctx, "alice", service.NamespaceCareer, "skills")
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := createSQLiteStore(t)

	require.NoError(t, store.Migrate(ctx))
	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}
