package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key the store writes.
const DefaultRedisPrefix = "harmony"

// RedisConfig holds connection settings for RedisStore.
type RedisConfig struct {
	Addr        string
	Password    string
	Prefix      string
	DB          int
	DialTimeout time.Duration
}

// RedisStore keeps each document as a JSON string value. Two sets index the
// documents: one per subject (for DeleteSubject) and one per namespace/key
// pair (for Subjects).
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if err := validateString(cfg.Addr, "addr"); err != nil {
		return nil, err
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) docKey(subject, namespace, key string) string {
	return s.prefix + ":doc:" + namespace + ":" + subject + ":" + key
}

func (s *RedisStore) subjectSet(subject string) string {
	return s.prefix + ":subject:" + subject
}

func (s *RedisStore) ownerSet(namespace, key string) string {
	return s.prefix + ":owners:" + namespace + ":" + key
}

// Get implements service.DocumentStore.
func (s *RedisStore) Get(ctx context.Context, subject, namespace, key string, dest any) (bool, error) {
	if err := validateAddress(ctx, subject, namespace, key); err != nil {
		return false, err
	}
	if dest == nil {
		return false, fmt.Errorf("%w: dest", ErrNilParameter)
	}

	data, err := s.client.Get(ctx, s.docKey(subject, namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read document: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: %s/%s/%s: %v", common.ErrCorruptDocument, namespace, subject, key, err)
	}
	return true, nil
}

// Put implements service.DocumentStore.
func (s *RedisStore) Put(ctx context.Context, subject, namespace, key string, doc any) error {
	if err := validateAddress(ctx, subject, namespace, key); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", namespace, key, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.docKey(subject, namespace, key), data, 0)
		pipe.SAdd(ctx, s.subjectSet(subject), namespace+"/"+key)
		pipe.SAdd(ctx, s.ownerSet(namespace, key), subject)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// Subjects implements service.DocumentStore.
func (s *RedisStore) Subjects(ctx context.Context, namespace, key string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSegment(namespace, "namespace"); err != nil {
		return nil, err
	}
	if err := validateSegment(key, "key"); err != nil {
		return nil, err
	}

	subjects, err := s.client.SMembers(ctx, s.ownerSet(namespace, key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	sort.Strings(subjects)
	return subjects, nil
}

// DeleteSubject implements service.DocumentStore.
func (s *RedisStore) DeleteSubject(ctx context.Context, subject string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSegment(subject, "subject"); err != nil {
		return err
	}

	members, err := s.client.SMembers(ctx, s.subjectSet(subject)).Result()
	if err != nil {
		return fmt.Errorf("failed to list subject documents: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, member := range members {
			namespace, key, ok := strings.Cut(member, "/")
			if !ok {
				continue
			}
			pipe.Del(ctx, s.docKey(subject, namespace, key))
			pipe.SRem(ctx, s.ownerSet(namespace, key), subject)
		}
		pipe.Del(ctx, s.subjectSet(subject))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
