package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/model"
)

func TestCareerPreferences(t *testing.T) {
	ctx := context.Background()
	career := newFixture(t).student.Career

	prefs, err := career.Preferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, prefs.Interests)

	updated, err := career.UpdatePreferences(ctx, func(p *model.CareerPreferences) {
		p.Interests = []string{"Data Science"}
	})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, updated.LastUpdated)

	updated, err = career.UpdatePreferences(ctx, func(p *model.CareerPreferences) {
		p.TargetRoles = []string{"Data Analyst"}
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data Science"}, updated.Interests)
	assert.Equal(t, []string{"Data Analyst"}, updated.TargetRoles)

	_, err = career.UpdatePreferences(ctx, func(p *model.CareerPreferences) { p.NetworkSize = -1 })
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestSkillsAndExperiences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	career := f.student.Career

	python, err := career.AddSkill(ctx, model.Skill{Name: "Python", Category: "Technical", Level: "Beginner"})
	require.NoError(t, err)
	_, err = career.AddSkill(ctx, model.Skill{Name: "Public speaking", Category: "Soft"})
	require.NoError(t, err)

	f.now = f.now.Add(24 * time.Hour)
	ok, err := career.UpdateSkill(ctx, python.ID, map[string]any{"level": "Intermediate"})
	require.NoError(t, err)
	assert.True(t, ok)

	technical, err := career.Skills(ctx, "technical")
	require.NoError(t, err)
	require.Len(t, technical, 1)
	assert.Equal(t, "Intermediate", technical[0].Level)
	assert.Equal(t, f.now, technical[0].UpdatedAt)

	exp, err := career.AddExperience(ctx, model.Experience{Title: "Summer intern", Type: "Internship"})
	require.NoError(t, err)
	ok, err = career.UpdateExperience(ctx, exp.ID, map[string]any{"organization": "Infosys"})
	require.NoError(t, err)
	assert.True(t, ok)

	internships, err := career.Experiences(ctx, "internship")
	require.NoError(t, err)
	require.Len(t, internships, 1)
	assert.Equal(t, "Infosys", internships[0].Organization)

	ok, err = career.DeleteSkill(ctx, python.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = career.DeleteExperience(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCareerReadiness(t *testing.T) {
	ctx := context.Background()
	career := newFixture(t).student.Career

	score, err := career.Readiness(ctx)
	require.NoError(t, err)
	assert.Zero(t, score)

	_, err = career.UpdatePreferences(ctx, func(p *model.CareerPreferences) {
		p.Interests = []string{"AI"}
		p.TargetRoles = []string{"ML Engineer"}
		p.Resume = "resume.pdf"
		p.NetworkSize = 25
	})
	require.NoError(t, err)
	for _, name := range []string{"Go", "SQL"} {
		_, err = career.AddSkill(ctx, model.Skill{Name: name})
		require.NoError(t, err)
	}
	_, err = career.AddExperience(ctx, model.Experience{Title: "Hackathon"})
	require.NoError(t, err)
	_, err = career.AddOpportunity(ctx, model.Opportunity{Title: "SDE intern", Status: model.OpportunityApplied})
	require.NoError(t, err)
	_, err = career.AddOpportunity(ctx, model.Opportunity{Title: "Analyst", Status: "Interested"})
	require.NoError(t, err)

	// 10 + 10 + 15 + 8 + 8 + 5 + 2
	score, err = career.Readiness(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 58, score, 1e-9)

	applied, err := career.Opportunities(ctx, "applied")
	require.NoError(t, err)
	assert.Len(t, applied, 1)
}
