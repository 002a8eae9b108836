package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/harmony/internal/aggregate"
	"github.com/Veraticus/harmony/internal/model"
)

const (
	deadlineWindow      = 3 * 24 * time.Hour
	trailingDays        = 7
	minWeeklyStudyHours = 10
	lowMoodThreshold    = 4
	lowSleepThreshold   = 6
	recurringFactorMin  = 3
	severeOverspendPct  = 50
)

func rec(domain model.Domain, priority model.Priority, title, description string) model.Recommendation {
	return model.Recommendation{Title: title, Description: description, Priority: priority, Domain: domain}
}

// trailingStart is the first day of the trailing week ending today.
func trailingStart(now time.Time) time.Time {
	return model.NewDate(now).AddDate(0, 0, -(trailingDays - 1))
}

func academicRules(snap AcademicSnapshot, now time.Time) []model.Recommendation {
	var out []model.Recommendation
	add := func(p model.Priority, title, desc string) {
		out = append(out, rec(model.DomainAcademic, p, title, desc))
	}

	due := aggregate.TasksDueWithin(snap.Tasks, now, deadlineWindow)
	switch {
	case len(due) >= 3:
		add(model.PriorityHigh, "Multiple Deadlines Approaching",
			fmt.Sprintf("You have %d tasks due in the next 3 days. Consider creating a study plan.", len(due)))
	case len(due) > 0:
		add(model.PriorityMedium, taskTitle(due[0]), taskDescription(due[0], now))
	}

	if aggregate.CGPADeclining(snap.Semesters) {
		sorted := aggregate.SortedSemesters(snap.Semesters)
		latest, previous := sorted[len(sorted)-1].CGPA, sorted[len(sorted)-2].CGPA
		add(model.PriorityHigh, "CGPA Declining",
			fmt.Sprintf("Your CGPA dropped from %.2f to %.2f. Consider seeking academic support.", previous, latest))
	}

	if len(snap.Sessions) > 0 {
		hours, count := aggregate.StudyHoursSince(snap.Sessions, trailingStart(now))
		switch {
		case count == 0:
			add(model.PriorityMedium, "No Recent Study Sessions",
				"You haven't logged any study sessions in the past week. Regular study helps retain information.")
		case hours < minWeeklyStudyHours:
			add(model.PriorityMedium, "Low Study Hours",
				"You've logged less than 10 hours of study in the past week. Consider increasing your study time.")
		}
	}
	return out
}

func taskTitle(t model.Task) string {
	kind := strings.TrimSpace(t.Type)
	if kind == "" {
		kind = "Task"
	}
	return kind + " Due Soon"
}

func taskDescription(t model.Task, now time.Time) string {
	subject := t.Title
	if t.CourseCode != "" {
		subject += " for " + t.CourseCode
	}
	days := int(t.DueDate.Sub(model.NewDate(now).Time).Hours() / 24)
	switch {
	case days < 0:
		return fmt.Sprintf("Your %s is overdue.", subject)
	case days == 0:
		return fmt.Sprintf("Your %s is due today.", subject)
	case days == 1:
		return fmt.Sprintf("Your %s is due tomorrow.", subject)
	default:
		return fmt.Sprintf("Your %s is due in %d days.", subject, days)
	}
}

func financialRules(snap FinancialSnapshot, now time.Time) []model.Recommendation {
	var out []model.Recommendation
	add := func(p model.Priority, title, desc string) {
		out = append(out, rec(model.DomainFinancial, p, title, desc))
	}

	if len(snap.Budget) == 0 {
		add(model.PriorityHigh, "Set Up Your Budget",
			"Creating a budget is the first step to managing your finances effectively.")
	} else {
		spending := aggregate.MonthlySpending(snap.Transactions, now)
		if worst, ok := aggregate.WorstOverBudget(snap.Budget, spending); ok {
			priority := model.PriorityMedium
			if worst.Percent > severeOverspendPct {
				priority = model.PriorityHigh
			}
			add(priority, "Budget Alert: "+worst.Category,
				fmt.Sprintf("You've exceeded your %s budget by ₹%.0f (%.0f%%).", worst.Category, worst.Spent-worst.Budget, worst.Percent))
		}
	}

	if len(snap.Aid) == 0 {
		add(model.PriorityMedium, "Explore Scholarship Opportunities",
			"Check the scholarship catalog to find scholarships you may be eligible for.")
	}

	hasEmergencyFund := false
	for _, g := range snap.Goals {
		if strings.Contains(strings.ToLower(g.Name), "emergency") {
			hasEmergencyFund = true
			break
		}
	}
	if !hasEmergencyFund {
		add(model.PriorityMedium, "Start an Emergency Fund",
			"Even a small emergency fund can help you handle unexpected expenses.")
	}
	return out
}

func wellnessRules(snap WellnessSnapshot, now time.Time) []model.Recommendation {
	var out []model.Recommendation
	add := func(p model.Priority, title, desc string) {
		out = append(out, rec(model.DomainWellness, p, title, desc))
	}
	since := trailingStart(now)

	if len(snap.Moods) == 0 {
		add(model.PriorityLow, "Start Tracking Your Mood",
			"Regular mood tracking helps you identify patterns and manage your mental health better.")
	} else {
		if avg, ok := aggregate.AverageMood(snap.Moods, since); ok && avg < lowMoodThreshold {
			add(model.PriorityHigh, "Your Mood Has Been Low",
				"Your recent mood scores are below average. Consider using some stress management techniques.")
		}
		if factors := aggregate.StressFactorCounts(snap.Moods, since); len(factors) > 0 && factors[0].Count >= recurringFactorMin {
			f := factors[0].Factor
			add(model.PriorityMedium, "Managing "+f,
				f+" appears to be a recurring stress factor. Check the coping strategies for ideas.")
		}
	}

	if avg, ok := aggregate.AverageSleep(snap.Sleep, since); ok && avg < lowSleepThreshold {
		add(model.PriorityHigh, "Improve Sleep Habits",
			fmt.Sprintf("You're averaging only %.1f hours of sleep. Aim for 7-9 hours for better academic performance.", avg))
	}
	return out
}

func careerRules(snap CareerSnapshot, _ time.Time) []model.Recommendation {
	var out []model.Recommendation
	add := func(p model.Priority, title, desc string) {
		out = append(out, rec(model.DomainCareer, p, title, desc))
	}

	if len(snap.Preferences.Interests) == 0 {
		add(model.PriorityMedium, "Define Your Career Interests",
			"Identifying your interests helps align your academic and extracurricular activities.")
	}
	if len(snap.Skills) == 0 {
		add(model.PriorityLow, "Start Tracking Skills",
			"Documenting and developing your skills is essential for career readiness.")
	}
	if len(snap.Experiences) == 0 {
		const desc = "Consider applying for internships or working on projects to build your resume."
		switch rank := snap.Profile.YearRank(); {
		case rank >= 3:
			add(model.PriorityHigh, "Gain Practical Experience", desc)
		case rank == 2:
			add(model.PriorityMedium, "Gain Practical Experience", desc)
		}
	}
	return out
}
