package model

// MoodEntry is one mood check-in.
type MoodEntry struct {
	Date       Date     `json:"date"`
	SleepHours *float64 `json:"sleep_hours,omitempty" validate:"omitempty,gte=0,lte=24"`
	Base
	Notes         string   `json:"notes,omitempty"`
	StressFactors []string `json:"stress_factors,omitempty"`
	Score         int      `json:"score" validate:"gte=1,lte=10"`
}

// SleepEntry records a night's sleep.
type SleepEntry struct {
	Date Date `json:"date"`
	Base
	Hours   float64 `json:"hours" validate:"gte=0,lte=24"`
	Quality int     `json:"quality,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// CopingStrategy is a technique the student uses under stress.
type CopingStrategy struct {
	LastUsed Date `json:"last_used"`
	Base
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	UsageCount  int    `json:"usage_count"`
}

// Habit is a recurring activity with streak tracking.
type Habit struct {
	StartDate     Date `json:"start_date"`
	LastCompleted Date `json:"last_completed"`
	Base
	Name              string `json:"name" validate:"required,notblank"`
	Frequency         string `json:"frequency,omitempty"`
	CompletionHistory []Date `json:"completion_history"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
}
