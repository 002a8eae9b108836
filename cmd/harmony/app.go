package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/harmony/internal/advisor"
	"github.com/Veraticus/harmony/internal/content"
	"github.com/Veraticus/harmony/internal/llm"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/recommend"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
	"github.com/Veraticus/harmony/internal/tracker"
)

// app is the set of services one command works with.
type app struct {
	store       service.DocumentStore
	llm         llm.Client
	recommender *recommend.Engine
	content     *content.Pool
	finder      *content.ResourceFinder
	advisor     *advisor.Advisor
	profiles    *tracker.Profiles
	logger      *slog.Logger
	now         func() time.Time
}

// openApp wires storage, the completion client and the engines from the
// resolved configuration. Callers must Close the result.
func (o *rootOptions) openApp(ctx context.Context) (*app, error) {
	store, err := storage.Open(ctx, o.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client, err := llm.NewClientOrDisabled(llm.Config{
		Provider:    o.cfg.LLM.Provider,
		APIKey:      o.cfg.LLM.APIKey,
		Model:       o.cfg.LLM.Model,
		BaseURL:     o.cfg.LLM.BaseURL,
		Timeout:     o.cfg.LLM.Timeout,
		Temperature: service.Temperature(o.cfg.LLM.Temperature),
		MaxTokens:   o.cfg.LLM.MaxTokens,
		RateLimit:   o.cfg.LLM.RateLimit,
	}, o.logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	a := &app{
		store:   store,
		llm:     client,
		logger:  o.logger,
		now:     time.Now,
		finder:  content.NewResourceFinder(client, o.logger),
		advisor: advisor.New(client, o.logger),
	}
	a.recommender = recommend.NewEngine(recommend.NewStoreSource(store), recommend.Options{
		Logger:        o.logger,
		TTL:           o.cfg.Recommend.CacheTTL,
		SweepInterval: o.cfg.Recommend.CacheTTL,
	})
	a.profiles = tracker.NewProfiles(store, tracker.WithChangeHook(a.recommender.Invalidate))
	a.content = content.NewPool(func(subject string) *content.Cache {
		return content.NewCache(content.Options{
			Completer:       client,
			State:           content.NewDocumentState(store, subject),
			Logger:          o.logger,
			RefreshInterval: o.cfg.Content.RefreshInterval,
		})
	})
	return a, nil
}

func (a *app) Close() {
	a.recommender.Close()
	a.llm.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close storage", "error", err)
	}
}

// student opens a session whose writes invalidate cached recommendations.
func (a *app) student(id string) (*tracker.Student, error) {
	return tracker.New(a.store, id, tracker.WithChangeHook(a.recommender.Invalidate))
}

// profile loads the student's profile, falling back to defaults for a new id.
func (a *app) profile(ctx context.Context, id string) (model.Profile, error) {
	p, _, err := a.profiles.Load(ctx, id)
	return p, err
}

// withApp runs fn with a freshly opened app and closes it afterwards.
func (o *rootOptions) withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := o.openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// withStudent runs fn against the selected student's session.
func (o *rootOptions) withStudent(ctx context.Context, fn func(a *app, s *tracker.Student) error) error {
	id, err := o.studentID()
	if err != nil {
		return err
	}
	return o.withApp(ctx, func(a *app) error {
		s, err := a.student(id)
		if err != nil {
			return err
		}
		return fn(a, s)
	})
}
