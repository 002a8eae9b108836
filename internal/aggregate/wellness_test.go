package aggregate

import (
	"testing"
	"time"

	"github.com/Veraticus/harmony/internal/model"
	"github.com/stretchr/testify/assert"
)

func mood(date string, score int, factors ...string) model.MoodEntry {
	return model.MoodEntry{Date: model.MustDate(date), Score: score, StressFactors: factors}
}

func TestWellnessScore(t *testing.T) {
	morning := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	loggedAt := func(m model.MoodEntry, at time.Time) model.MoodEntry {
		m.CreatedAt = at
		return m
	}

	tests := []struct {
		name  string
		moods []model.MoodEntry
		want  float64
	}{
		{name: "no moods", want: DefaultWellnessScore},
		{
			name:  "latest date wins",
			moods: []model.MoodEntry{mood("2024-03-01", 9), mood("2024-03-05", 4), mood("2024-03-03", 6)},
			want:  4,
		},
		{
			name: "same day uses the later entry",
			moods: []model.MoodEntry{
				loggedAt(mood("2024-03-05", 4), morning),
				loggedAt(mood("2024-03-05", 8), morning.Add(10*time.Hour)),
			},
			want: 8,
		},
		{
			name: "same day ordered by creation not insertion",
			moods: []model.MoodEntry{
				loggedAt(mood("2024-03-05", 8), morning.Add(10*time.Hour)),
				loggedAt(mood("2024-03-05", 4), morning),
			},
			want: 8,
		},
		{
			name:  "same day without timestamps uses the last inserted",
			moods: []model.MoodEntry{mood("2024-03-05", 4), mood("2024-03-05", 6)},
			want:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WellnessScore(tt.moods), 1e-9)
		})
	}
}

func TestAverageMood(t *testing.T) {
	since := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	_, ok := AverageMood([]model.MoodEntry{mood("2024-03-01", 9)}, since)
	assert.False(t, ok)

	avg, ok := AverageMood([]model.MoodEntry{mood("2024-03-01", 9), mood("2024-03-03", 4), mood("2024-03-04", 2)}, since)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, avg, 1e-9)
}

func TestStressFactorCounts(t *testing.T) {
	moods := []model.MoodEntry{
		mood("2024-03-01", 5, "Exams", "Money"),
		mood("2024-03-02", 5, "Exams"),
		mood("2024-03-03", 5, "Sleep", "Exams", "Money"),
	}

	assert.Equal(t, []FactorCount{
		{Factor: "Exams", Count: 3},
		{Factor: "Money", Count: 2},
		{Factor: "Sleep", Count: 1},
	}, StressFactorCounts(moods, time.Time{}))

	recent := StressFactorCounts(moods, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []FactorCount{{Factor: "Exams", Count: 1}, {Factor: "Money", Count: 1}, {Factor: "Sleep", Count: 1}}, recent)
}

func TestSleepMoodCorrelation(t *testing.T) {
	days := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}

	var sleep []model.SleepEntry
	var moods []model.MoodEntry
	for i, d := range days {
		sleep = append(sleep, model.SleepEntry{Date: model.MustDate(d), Hours: float64(5 + i)})
		moods = append(moods, mood(d, 3+i))
	}
	assert.InDelta(t, 1.0, SleepMoodCorrelation(sleep, moods), 1e-9)

	assert.InDelta(t, 0.0, SleepMoodCorrelation(sleep[:4], moods[:4]), 1e-9)

	flat := make([]model.MoodEntry, len(moods))
	for i := range moods {
		flat[i] = mood(days[i], 5)
	}
	assert.InDelta(t, 0.0, SleepMoodCorrelation(sleep, flat), 1e-9)
}

func TestCareerReadiness(t *testing.T) {
	assert.InDelta(t, 0.0, CareerReadiness(CareerInputs{}), 1e-9)

	partial := CareerReadiness(CareerInputs{
		Preferences: model.CareerPreferences{Interests: []string{"AI"}, NetworkSize: 12},
		Skills:      2,
		Experiences: 1,
	})
	assert.InDelta(t, 10+8+8+2.4, partial, 1e-9)

	maxed := CareerReadiness(CareerInputs{
		Preferences: model.CareerPreferences{
			Interests:   []string{"AI"},
			TargetRoles: []string{"ML Engineer"},
			Resume:      "resume.pdf",
			NetworkSize: 500,
		},
		Skills:       10,
		Experiences:  10,
		Applications: 10,
	})
	assert.InDelta(t, 100.0, maxed, 1e-9)
}

func TestCountApplications(t *testing.T) {
	assert.Equal(t, 2, CountApplications([]model.Opportunity{
		{Status: "Applied"}, {Status: "Interested"}, {Status: "Applied"},
	}))
}
