package model

import (
	"strings"
	"time"
)

// Profile defaults applied when a field is absent.
const (
	DefaultFullName    = "Student"
	DefaultCollegeName = "College"
	DefaultDegree      = "Degree"
	DefaultYearOfStudy = "1st Year"
)

// YearsOfStudy lists the recognised year-of-study values.
var YearsOfStudy = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Final Year"}

// Preferences holds display and privacy settings.
type Preferences struct {
	Theme                string `json:"theme"`
	PrivacyLevel         string `json:"privacy_level"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// Profile is the singleton document describing a student.
type Profile struct {
	CreatedAt   time.Time   `json:"created_at"`
	LastLogin   time.Time   `json:"last_login,omitempty"`
	StudentID   string      `json:"student_id" validate:"required,subject"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email,omitempty" validate:"omitempty,email"`
	CollegeName string      `json:"college_name"`
	Degree      string      `json:"degree"`
	Major       string      `json:"major,omitempty"`
	YearOfStudy string      `json:"year_of_study"`
	Preferences Preferences `json:"preferences"`
}

// DefaultProfile returns a profile carrying every default value.
func DefaultProfile(studentID string) Profile {
	p := Profile{StudentID: studentID}
	p.ApplyDefaults()
	return p
}

// ApplyDefaults fills empty fields with their default values.
func (p *Profile) ApplyDefaults() {
	if p.FullName == "" {
		p.FullName = DefaultFullName
	}
	if p.CollegeName == "" {
		p.CollegeName = DefaultCollegeName
	}
	if p.Degree == "" {
		p.Degree = DefaultDegree
	}
	if p.YearOfStudy == "" {
		p.YearOfStudy = DefaultYearOfStudy
	}
	if p.Preferences.Theme == "" {
		p.Preferences = Preferences{
			Theme:                "light",
			NotificationsEnabled: true,
			PrivacyLevel:         "standard",
		}
	}
}

// YearRank returns 1-4 for the recognised years, 5 for a final year and 0 otherwise.
func (p Profile) YearRank() int {
	year := strings.ToLower(strings.TrimSpace(p.YearOfStudy))
	switch {
	case strings.HasPrefix(year, "1st"):
		return 1
	case strings.HasPrefix(year, "2nd"):
		return 2
	case strings.HasPrefix(year, "3rd"):
		return 3
	case strings.HasPrefix(year, "4th"):
		return 4
	case strings.HasPrefix(year, "final"):
		return 5
	default:
		return 0
	}
}
