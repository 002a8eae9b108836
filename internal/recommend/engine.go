package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
)

// DefaultTTL is how long recommendations are reused for one student.
const DefaultTTL = time.Hour

// Options configures an Engine.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
	TTL    time.Duration
	// SweepInterval controls how often expired results are purged; zero
	// disables the background sweep.
	SweepInterval time.Duration
}

// Engine produces recommendations from a Source.
type Engine struct {
	source Source
	logger *slog.Logger
	now    func() time.Time
	cache  *resultCache
}

// NewEngine creates an engine. Close it to stop the background sweep.
func NewEngine(source Source, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = common.DiscardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Engine{
		source: source,
		logger: opts.Logger,
		now:    opts.Now,
		cache:  newResultCache(opts.TTL, opts.Now, opts.SweepInterval),
	}
}

type domainRule struct {
	run    func(ctx context.Context, studentID string, now time.Time) ([]model.Recommendation, error)
	domain model.Domain
}

func (e *Engine) domains() []domainRule {
	return []domainRule{
		{domain: model.DomainAcademic, run: func(ctx context.Context, id string, now time.Time) ([]model.Recommendation, error) {
			snap, err := e.source.Academic(ctx, id)
			if err != nil {
				return nil, err
			}
			return academicRules(snap, now), nil
		}},
		{domain: model.DomainFinancial, run: func(ctx context.Context, id string, now time.Time) ([]model.Recommendation, error) {
			snap, err := e.source.Financial(ctx, id)
			if err != nil {
				return nil, err
			}
			return financialRules(snap, now), nil
		}},
		{domain: model.DomainWellness, run: func(ctx context.Context, id string, now time.Time) ([]model.Recommendation, error) {
			snap, err := e.source.Wellness(ctx, id)
			if err != nil {
				return nil, err
			}
			return wellnessRules(snap, now), nil
		}},
		{domain: model.DomainCareer, run: func(ctx context.Context, id string, now time.Time) ([]model.Recommendation, error) {
			snap, err := e.source.Career(ctx, id)
			if err != nil {
				return nil, err
			}
			return careerRules(snap, now), nil
		}},
	}
}

// Recommend returns the student's recommendations, highest priority first.
// It never fails: a domain whose records cannot be read contributes nothing.
func (e *Engine) Recommend(ctx context.Context, studentID string) []model.Recommendation {
	if cached, ok := e.cache.get(studentID); ok {
		return append([]model.Recommendation(nil), cached...)
	}

	now := e.now()
	domains := e.domains()
	results := make([][]model.Recommendation, len(domains))

	var g errgroup.Group
	for i, d := range domains {
		g.Go(func() error {
			results[i] = e.evaluate(ctx, d, studentID, now)
			return nil
		})
	}
	_ = g.Wait()

	var recs []model.Recommendation
	for _, r := range results {
		recs = append(recs, r...)
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}
	SortByPriority(recs)

	e.cache.set(studentID, recs)
	return append([]model.Recommendation(nil), recs...)
}

func (e *Engine) evaluate(ctx context.Context, d domainRule, studentID string, now time.Time) (recs []model.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("recommendation rules panicked",
				"domain", d.domain, "student", studentID, "panic", fmt.Sprint(r))
			recs = nil
		}
	}()

	recs, err := d.run(ctx, studentID, now)
	if err != nil {
		common.LogError(ctx, e.logger, err, "failed to load records for recommendations",
			common.Fields{"domain": d.domain, "student": studentID})
		return nil
	}
	return recs
}

// Invalidate drops the cached recommendations of a student.
func (e *Engine) Invalidate(studentID string) {
	e.cache.delete(studentID)
}

// Close stops the background sweep.
func (e *Engine) Close() {
	e.cache.close()
}

// SortByPriority orders recommendations by priority rank, highest first,
// keeping the existing order among equal priorities.
func SortByPriority(recs []model.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
}
