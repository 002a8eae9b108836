package tracker

import (
	"context"
	"sort"
	"time"

	"github.com/Veraticus/harmony/internal/aggregate"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
)

// Wellness manages mood, sleep, coping strategies and habits.
type Wellness struct {
	s          *session
	moods      *storage.Collection[model.MoodEntry, *model.MoodEntry]
	sleep      *storage.Collection[model.SleepEntry, *model.SleepEntry]
	strategies *storage.Collection[model.CopingStrategy, *model.CopingStrategy]
	habits     *storage.Collection[model.Habit, *model.Habit]
}

func newWellness(s *session) *Wellness {
	ns := service.NamespaceWellness
	return &Wellness{
		s:          s,
		moods:      newCollection[model.MoodEntry](s, ns, keyMood),
		sleep:      newCollection[model.SleepEntry](s, ns, keySleep),
		strategies: newCollection[model.CopingStrategy](s, ns, keyCoping),
		habits:     newCollection[model.Habit](s, ns, keyHabits),
	}
}

// LogMood stores a mood check-in dated today unless set. When sleep hours are
// given a sleep entry for the same date is stored too.
func (w *Wellness) LogMood(ctx context.Context, entry model.MoodEntry) (model.MoodEntry, error) {
	if entry.Date.IsZero() {
		entry.Date = w.s.today()
	}
	added, err := w.moods.Add(ctx, entry)
	if err != nil {
		return model.MoodEntry{}, err
	}
	if entry.SleepHours != nil {
		if _, err := w.sleep.Add(ctx, model.SleepEntry{Date: entry.Date, Hours: *entry.SleepHours}); err != nil {
			return added, w.s.changed(err)
		}
	}
	return added, w.s.changed(nil)
}

// Moods returns mood entries ordered by date.
func (w *Wellness) Moods(ctx context.Context) ([]model.MoodEntry, error) {
	moods, err := w.moods.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(moods, func(i, j int) bool {
		return moods[i].Date.Before(moods[j].Date.Time)
	})
	return moods, nil
}

// Score returns the latest mood score, or aggregate.DefaultWellnessScore.
func (w *Wellness) Score(ctx context.Context) (float64, error) {
	moods, err := w.moods.List(ctx)
	if err != nil {
		return 0, err
	}
	return aggregate.WellnessScore(moods), nil
}

// StressFactors counts stress factors across every mood entry.
func (w *Wellness) StressFactors(ctx context.Context) ([]aggregate.FactorCount, error) {
	moods, err := w.moods.List(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.StressFactorCounts(moods, time.Time{}), nil
}

// LogSleep stores a sleep entry dated today unless set.
func (w *Wellness) LogSleep(ctx context.Context, entry model.SleepEntry) (model.SleepEntry, error) {
	if entry.Date.IsZero() {
		entry.Date = w.s.today()
	}
	added, err := w.sleep.Add(ctx, entry)
	return added, w.s.changed(err)
}

// Sleep returns sleep entries ordered by date.
func (w *Wellness) Sleep(ctx context.Context) ([]model.SleepEntry, error) {
	entries, err := w.sleep.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date.Time)
	})
	return entries, nil
}

// SleepMoodCorrelation correlates sleep hours with mood scores by date.
func (w *Wellness) SleepMoodCorrelation(ctx context.Context) (float64, error) {
	sleep, err := w.sleep.List(ctx)
	if err != nil {
		return 0, err
	}
	moods, err := w.moods.List(ctx)
	if err != nil {
		return 0, err
	}
	return aggregate.SleepMoodCorrelation(sleep, moods), nil
}

// AddStrategy stores a coping strategy.
func (w *Wellness) AddStrategy(ctx context.Context, strategy model.CopingStrategy) (model.CopingStrategy, error) {
	added, err := w.strategies.Add(ctx, strategy)
	return added, w.s.changed(err)
}

// Strategies lists coping strategies.
func (w *Wellness) Strategies(ctx context.Context) ([]model.CopingStrategy, error) {
	return w.strategies.List(ctx)
}

// LogStrategyUsage counts one use of a strategy today.
func (w *Wellness) LogStrategyUsage(ctx context.Context, id string) (bool, error) {
	today := w.s.today()
	ok, err := w.strategies.Mutate(ctx, id, func(c *model.CopingStrategy) error {
		c.UsageCount++
		c.LastUsed = today
		return nil
	})
	return ok, w.s.changed(err)
}

// AddHabit starts tracking a habit from today with empty streaks.
func (w *Wellness) AddHabit(ctx context.Context, habit model.Habit) (model.Habit, error) {
	habit.StartDate = w.s.today()
	habit.LastCompleted = model.Date{}
	habit.CompletionHistory = []model.Date{}
	habit.CurrentStreak = 0
	habit.LongestStreak = 0
	added, err := w.habits.Add(ctx, habit)
	return added, w.s.changed(err)
}

// Habits lists tracked habits.
func (w *Wellness) Habits(ctx context.Context) ([]model.Habit, error) {
	return w.habits.List(ctx)
}

// CompleteHabit records today's completion. It reports false when the habit
// does not exist or was already completed today. Completing on the day after
// the previous completion extends the streak; any gap restarts it at one.
func (w *Wellness) CompleteHabit(ctx context.Context, id string) (bool, error) {
	today := w.s.today()
	already := false
	found, err := w.habits.Mutate(ctx, id, func(h *model.Habit) error {
		if h.LastCompleted.Equal(today.Time) {
			already = true
			return nil
		}
		if !h.LastCompleted.IsZero() && h.LastCompleted.AddDate(0, 0, 1).Equal(today.Time) {
			h.CurrentStreak++
		} else {
			h.CurrentStreak = 1
		}
		if h.CurrentStreak > h.LongestStreak {
			h.LongestStreak = h.CurrentStreak
		}
		h.LastCompleted = today
		h.CompletionHistory = append(h.CompletionHistory, today)
		return nil
	})
	if err != nil || !found || already {
		return false, err
	}
	return true, w.s.changed(nil)
}

// HabitHistory returns the completion dates of a habit.
func (w *Wellness) HabitHistory(ctx context.Context, id string) ([]model.Date, bool, error) {
	habit, found, err := w.habits.Find(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}
	return habit.CompletionHistory, true, nil
}
