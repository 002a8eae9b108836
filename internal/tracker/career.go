package tracker

import (
	"context"
	"strings"

	"github.com/Veraticus/harmony/internal/aggregate"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
)

// Career manages career preferences, skills, experiences and opportunities.
type Career struct {
	s             *session
	preferences   *storage.Document[model.CareerPreferences]
	skills        *storage.Collection[model.Skill, *model.Skill]
	experiences   *storage.Collection[model.Experience, *model.Experience]
	opportunities *storage.Collection[model.Opportunity, *model.Opportunity]
}

func newCareer(s *session) *Career {
	ns := service.NamespaceCareer
	return &Career{
		s:             s,
		preferences:   storage.NewDocument[model.CareerPreferences](s.store, s.id, ns, keyCareer, nil),
		skills:        newCollection[model.Skill](s, ns, keySkills),
		experiences:   newCollection[model.Experience](s, ns, keyExp),
		opportunities: newCollection[model.Opportunity](s, ns, keyOpps),
	}
}

// Preferences returns the stored career preferences.
func (c *Career) Preferences(ctx context.Context) (model.CareerPreferences, error) {
	prefs, _, err := c.preferences.Load(ctx)
	return prefs, err
}

// UpdatePreferences applies fn to the stored preferences and stamps
// last_updated.
func (c *Career) UpdatePreferences(ctx context.Context, fn func(*model.CareerPreferences)) (model.CareerPreferences, error) {
	updated, err := c.preferences.Update(ctx, func(p *model.CareerPreferences) error {
		fn(p)
		p.LastUpdated = c.s.now()
		return model.Validate(p)
	})
	return updated, c.s.changed(err)
}

// AddSkill stores a skill.
func (c *Career) AddSkill(ctx context.Context, skill model.Skill) (model.Skill, error) {
	added, err := c.skills.Add(ctx, skill)
	return added, c.s.changed(err)
}

// UpdateSkill applies a partial update and stamps updated_at.
func (c *Career) UpdateSkill(ctx context.Context, id string, patch map[string]any) (bool, error) {
	ok, err := c.skills.Update(ctx, id, c.stamped(patch))
	return ok, c.s.changed(err)
}

// DeleteSkill removes a skill.
func (c *Career) DeleteSkill(ctx context.Context, id string) (bool, error) {
	ok, err := c.skills.Delete(ctx, id)
	return ok, c.s.changed(err)
}

// Skills lists skills, optionally only those in category.
func (c *Career) Skills(ctx context.Context, category string) ([]model.Skill, error) {
	skills, err := c.skills.List(ctx)
	if err != nil || category == "" {
		return skills, err
	}
	return filter(skills, func(s model.Skill) bool { return strings.EqualFold(s.Category, category) }), nil
}

// AddExperience stores an experience.
func (c *Career) AddExperience(ctx context.Context, exp model.Experience) (model.Experience, error) {
	added, err := c.experiences.Add(ctx, exp)
	return added, c.s.changed(err)
}

// UpdateExperience applies a partial update and stamps updated_at.
func (c *Career) UpdateExperience(ctx context.Context, id string, patch map[string]any) (bool, error) {
	ok, err := c.experiences.Update(ctx, id, c.stamped(patch))
	return ok, c.s.changed(err)
}

// DeleteExperience removes an experience.
func (c *Career) DeleteExperience(ctx context.Context, id string) (bool, error) {
	ok, err := c.experiences.Delete(ctx, id)
	return ok, c.s.changed(err)
}

// Experiences lists experiences, optionally only those of kind.
func (c *Career) Experiences(ctx context.Context, kind string) ([]model.Experience, error) {
	exps, err := c.experiences.List(ctx)
	if err != nil || kind == "" {
		return exps, err
	}
	return filter(exps, func(e model.Experience) bool { return strings.EqualFold(e.Type, kind) }), nil
}

// AddOpportunity stores an opportunity.
func (c *Career) AddOpportunity(ctx context.Context, opp model.Opportunity) (model.Opportunity, error) {
	added, err := c.opportunities.Add(ctx, opp)
	return added, c.s.changed(err)
}

// Opportunities lists opportunities, optionally only those with status.
func (c *Career) Opportunities(ctx context.Context, status string) ([]model.Opportunity, error) {
	opps, err := c.opportunities.List(ctx)
	if err != nil || status == "" {
		return opps, err
	}
	return filter(opps, func(o model.Opportunity) bool { return strings.EqualFold(o.Status, status) }), nil
}

// Readiness scores career preparation from 0 to 100.
func (c *Career) Readiness(ctx context.Context) (float64, error) {
	prefs, err := c.Preferences(ctx)
	if err != nil {
		return 0, err
	}
	skills, err := c.skills.List(ctx)
	if err != nil {
		return 0, err
	}
	exps, err := c.experiences.List(ctx)
	if err != nil {
		return 0, err
	}
	opps, err := c.opportunities.List(ctx)
	if err != nil {
		return 0, err
	}
	return aggregate.CareerReadiness(aggregate.CareerInputs{
		Preferences:  prefs,
		Skills:       len(skills),
		Experiences:  len(exps),
		Applications: aggregate.CountApplications(opps),
	}), nil
}

func (c *Career) stamped(patch map[string]any) map[string]any {
	out := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		out[k] = v
	}
	out["updated_at"] = c.s.now()
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
