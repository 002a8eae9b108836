package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/Veraticus/harmony/internal/model"
)

// DefaultWellnessScore is reported when no mood has been logged.
const DefaultWellnessScore = 7.0

// minCorrelationSamples is the number of shared dates needed before a
// sleep/mood correlation is reported.
const minCorrelationSamples = 5

// WellnessScore returns the raw score of the most recent mood entry. Entries
// on the same date are ordered by creation time, later insertion winning ties.
func WellnessScore(moods []model.MoodEntry) float64 {
	if len(moods) == 0 {
		return DefaultWellnessScore
	}
	latest := moods[0]
	for _, m := range moods[1:] {
		if m.Date.After(latest.Date.Time) ||
			(m.Date.Equal(latest.Date.Time) && !m.CreatedAt.Before(latest.CreatedAt)) {
			latest = m
		}
	}
	return float64(latest.Score)
}

// AverageMood averages mood scores dated on or after since; ok is false when
// no entry qualifies.
func AverageMood(moods []model.MoodEntry, since time.Time) (avg float64, ok bool) {
	var sum float64
	n := 0
	for _, m := range moods {
		if m.Date.IsZero() || m.Date.Before(since) {
			continue
		}
		sum += float64(m.Score)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// AverageSleep averages sleep hours dated on or after since.
func AverageSleep(entries []model.SleepEntry, since time.Time) (avg float64, ok bool) {
	var sum float64
	n := 0
	for _, e := range entries {
		if e.Date.IsZero() || e.Date.Before(since) {
			continue
		}
		sum += e.Hours
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// FactorCount is how often a stress factor was reported.
type FactorCount struct {
	Factor string `json:"factor"`
	Count  int    `json:"count"`
}

// StressFactorCounts counts stress factors on entries dated on or after
// since, most frequent first and alphabetical on ties. A zero since counts
// every entry.
func StressFactorCounts(moods []model.MoodEntry, since time.Time) []FactorCount {
	counts := map[string]int{}
	for _, m := range moods {
		if !since.IsZero() && (m.Date.IsZero() || m.Date.Before(since)) {
			continue
		}
		for _, f := range m.StressFactors {
			if f != "" {
				counts[f]++
			}
		}
	}

	factors := make([]FactorCount, 0, len(counts))
	for f, c := range counts {
		factors = append(factors, FactorCount{Factor: f, Count: c})
	}
	sort.Slice(factors, func(i, j int) bool {
		if factors[i].Count != factors[j].Count {
			return factors[i].Count > factors[j].Count
		}
		return factors[i].Factor < factors[j].Factor
	})
	return factors
}

// SleepMoodCorrelation returns the Pearson correlation between sleep hours and
// mood score over dates present in both series. Multiple entries on one date
// are averaged. Fewer than five shared dates, or a series with no variance,
// yields 0.
func SleepMoodCorrelation(sleep []model.SleepEntry, moods []model.MoodEntry) float64 {
	sleepByDate := averageByDate(len(sleep), func(i int) (string, float64) {
		return sleep[i].Date.String(), sleep[i].Hours
	})
	moodByDate := averageByDate(len(moods), func(i int) (string, float64) {
		return moods[i].Date.String(), float64(moods[i].Score)
	})

	dates := make([]string, 0, len(sleepByDate))
	for d := range sleepByDate {
		if _, ok := moodByDate[d]; ok {
			dates = append(dates, d)
		}
	}
	if len(dates) < minCorrelationSamples {
		return 0
	}
	sort.Strings(dates)

	xs := make([]float64, len(dates))
	ys := make([]float64, len(dates))
	for i, d := range dates {
		xs[i] = sleepByDate[d]
		ys[i] = moodByDate[d]
	}
	return pearson(xs, ys)
}

func averageByDate(n int, at func(int) (string, float64)) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		date, v := at(i)
		if date == "" {
			continue
		}
		sums[date] += v
		counts[date]++
	}
	for d := range sums {
		sums[d] /= float64(counts[d])
	}
	return sums
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
