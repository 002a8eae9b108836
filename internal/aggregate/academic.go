package aggregate

import (
	"sort"
	"time"

	"github.com/Veraticus/harmony/internal/model"
)

// WeightedCGPA returns the cumulative grade point average after adding a
// semester with the given sgpa and credits to the existing entries. With no
// existing entries the result is sgpa itself.
func WeightedCGPA(existing []model.SemesterPerformance, sgpa float64, credits int) float64 {
	if len(existing) == 0 {
		return sgpa
	}

	points := sgpa * float64(credits)
	total := credits
	for _, sem := range existing {
		points += sem.SGPA * float64(sem.Credits)
		total += sem.Credits
	}
	if total == 0 {
		return 0
	}
	return points / float64(total)
}

// CurrentCGPA returns the cgpa of the entry with the highest semester index.
// The first such entry wins on ties.
func CurrentCGPA(entries []model.SemesterPerformance) float64 {
	if len(entries) == 0 {
		return 0
	}
	latest := entries[0]
	for _, sem := range entries[1:] {
		if sem.SemesterIndex > latest.SemesterIndex {
			latest = sem
		}
	}
	return latest.CGPA
}

// SortedSemesters returns a copy of entries ordered by semester index.
func SortedSemesters(entries []model.SemesterPerformance) []model.SemesterPerformance {
	sorted := make([]model.SemesterPerformance, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SemesterIndex < sorted[j].SemesterIndex
	})
	return sorted
}

// CGPADeclining reports whether the latest semester's cgpa is below the
// previous semester's.
func CGPADeclining(entries []model.SemesterPerformance) bool {
	if len(entries) < 2 {
		return false
	}
	sorted := SortedSemesters(entries)
	return sorted[len(sorted)-1].CGPA < sorted[len(sorted)-2].CGPA
}

// TasksDueWithin returns incomplete tasks due no later than window after
// today, including overdue ones, ordered by due date. Tasks without a due date
// are skipped.
func TasksDueWithin(tasks []model.Task, now time.Time, window time.Duration) []model.Task {
	cutoff := model.NewDate(now).Add(window)
	due := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Done() || task.DueDate.IsZero() {
			continue
		}
		if !task.DueDate.After(cutoff) {
			due = append(due, task)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueDate.Before(due[j].DueDate.Time)
	})
	return due
}

// StudyHoursBySubject totals study hours per subject, largest first. Sessions
// without a subject count as model.DefaultCategory.
func StudyHoursBySubject(sessions []model.StudySession) []CategoryTotal {
	return SortByTotalDesc(GroupSum(sessions,
		func(s model.StudySession) string { return s.Subject },
		func(s model.StudySession) float64 { return s.Hours },
	))
}

// StudyHoursSince totals hours for sessions dated on or after since.
func StudyHoursSince(sessions []model.StudySession, since time.Time) (hours float64, count int) {
	for _, s := range sessions {
		if s.Date.IsZero() || s.Date.Before(since) {
			continue
		}
		hours += s.Hours
		count++
	}
	return hours, count
}
