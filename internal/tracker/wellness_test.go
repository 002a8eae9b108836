package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/harmony/internal/aggregate"
	"github.com/Veraticus/harmony/internal/model"
)

func hours(h float64) *float64 { return &h }

func TestLogMoodAlsoLogsSleep(t *testing.T) {
	ctx := context.Background()
	wellness := newFixture(t).student.Wellness

	score, err := wellness.Score(ctx)
	require.NoError(t, err)
	assert.InDelta(t, aggregate.DefaultWellnessScore, score, 1e-9)

	_, err = wellness.LogMood(ctx, model.MoodEntry{Score: 6, Date: model.MustDate("2025-04-08"), StressFactors: []string{"Exam stress"}})
	require.NoError(t, err)
	entry, err := wellness.LogMood(ctx, model.MoodEntry{Score: 4, SleepHours: hours(5.5), StressFactors: []string{"Exam stress", "Homesickness"}})
	require.NoError(t, err)
	assert.Equal(t, model.MustDate("2025-04-10"), entry.Date)

	sleep, err := wellness.Sleep(ctx)
	require.NoError(t, err)
	require.Len(t, sleep, 1)
	assert.InDelta(t, 5.5, sleep[0].Hours, 1e-9)
	assert.Equal(t, entry.Date, sleep[0].Date)

	score, err = wellness.Score(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 4, score, 1e-9)

	factors, err := wellness.StressFactors(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, factors)
	assert.Equal(t, "Exam stress", factors[0].Factor)
	assert.Equal(t, 2, factors[0].Count)

	_, err = wellness.LogMood(ctx, model.MoodEntry{Score: 11})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestSleepMoodCorrelation(t *testing.T) {
	ctx := context.Background()
	wellness := newFixture(t).student.Wellness

	for i, day := range []string{"2025-04-01", "2025-04-02", "2025-04-03", "2025-04-04", "2025-04-05"} {
		_, err := wellness.LogMood(ctx, model.MoodEntry{
			Date:       model.MustDate(day),
			Score:      4 + i,
			SleepHours: hours(5 + float64(i)),
		})
		require.NoError(t, err)
	}

	r, err := wellness.SleepMoodCorrelation(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestCopingStrategies(t *testing.T) {
	ctx := context.Background()
	wellness := newFixture(t).student.Wellness

	strategy, err := wellness.AddStrategy(ctx, model.CopingStrategy{Name: "Deep Breathing", Category: "Mindfulness"})
	require.NoError(t, err)

	for range 2 {
		ok, err := wellness.LogStrategyUsage(ctx, strategy.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := wellness.LogStrategyUsage(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	strategies, err := wellness.Strategies(ctx)
	require.NoError(t, err)
	require.Len(t, strategies, 1)
	assert.Equal(t, 2, strategies[0].UsageCount)
	assert.Equal(t, model.MustDate("2025-04-10"), strategies[0].LastUsed)
}

func TestStrategiesFor(t *testing.T) {
	assert.Equal(t, "Create a realistic study schedule", StrategiesFor("exam")[0])
	assert.Equal(t, "Create a detailed monthly budget", StrategiesFor("Financial concerns about rent")[0])
	assert.Equal(t, defaultStrategies, StrategiesFor("weather"))
	assert.Equal(t, defaultStrategies, StrategiesFor(""))
}

func TestHabitStreaks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	wellness := f.student.Wellness

	habit, err := wellness.AddHabit(ctx, model.Habit{Name: "Meditation", CurrentStreak: 9})
	require.NoError(t, err)
	assert.Zero(t, habit.CurrentStreak)
	assert.Equal(t, model.MustDate("2025-04-10"), habit.StartDate)

	complete := func() bool {
		ok, err := wellness.CompleteHabit(ctx, habit.ID)
		require.NoError(t, err)
		return ok
	}

	assert.True(t, complete())
	assert.False(t, complete(), "second completion on the same day")

	f.now = f.now.AddDate(0, 0, 1)
	assert.True(t, complete())
	f.now = f.now.AddDate(0, 0, 1)
	assert.True(t, complete())

	habits, err := wellness.Habits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, habits[0].CurrentStreak)
	assert.Equal(t, 3, habits[0].LongestStreak)

	f.now = f.now.AddDate(0, 0, 3)
	assert.True(t, complete())

	habits, err = wellness.Habits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, habits[0].CurrentStreak)
	assert.Equal(t, 3, habits[0].LongestStreak)

	history, found, err := wellness.HabitHistory(ctx, habit.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, history, 4)

	ok, err := wellness.CompleteHabit(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
