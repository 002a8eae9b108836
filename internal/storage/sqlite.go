package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/harmony/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore keeps documents as rows of a single SQLite table.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewSQLiteStore opens (creating if needed) the database at dbPath. Call
// Migrate before use.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements service.DocumentStore.
func (s *SQLiteStore) Get(ctx context.Context, subject, namespace, key string, dest any) (bool, error) {
	if err := validateAddress(ctx, subject, namespace, key); err != nil {
		return false, err
	}
	if dest == nil {
		return false, fmt.Errorf("%w: dest", ErrNilParameter)
	}

	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE subject = ? AND namespace = ? AND key = ?`,
		subject, namespace, key,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query document: %w", err)
	}

	if err := json.Unmarshal([]byte(body), dest); err != nil {
		return false, fmt.Errorf("%w: %s/%s/%s: %v", common.ErrCorruptDocument, namespace, subject, key, err)
	}
	return true, nil
}

// Put implements service.DocumentStore. Each write bumps the row version.
func (s *SQLiteStore) Put(ctx context.Context, subject, namespace, key string, doc any) error {
	if err := validateAddress(ctx, subject, namespace, key); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", namespace, key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (subject, namespace, key, body, version, updated_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(subject, namespace, key) DO UPDATE SET
			body = excluded.body,
			version = documents.version + 1,
			updated_at = excluded.updated_at`,
		subject, namespace, key, string(body), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Version returns how many times a document has been written, or 0 when absent.
func (s *SQLiteStore) Version(ctx context.Context, subject, namespace, key string) (int, error) {
	if err := validateAddress(ctx, subject, namespace, key); err != nil {
		return 0, err
	}

	var version int
	err := s.db.QueryRowContext(ctx,
		`SELECT version FROM documents WHERE subject = ? AND namespace = ? AND key = ?`,
		subject, namespace, key,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query version: %w", err)
	}
	return version, nil
}

// Subjects implements service.DocumentStore.
func (s *SQLiteStore) Subjects(ctx context.Context, namespace, key string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSegment(namespace, "namespace"); err != nil {
		return nil, err
	}
	if err := validateSegment(key, "key"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject FROM documents WHERE namespace = ? AND key = ? ORDER BY subject`,
		namespace, key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subjects := []string{}
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// DeleteSubject implements service.DocumentStore.
func (s *SQLiteStore) DeleteSubject(ctx context.Context, subject string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSegment(subject, "subject"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE subject = ?`, subject); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}
