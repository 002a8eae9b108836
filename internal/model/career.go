package model

import "time"

// OpportunityApplied is the status that counts as a submitted application.
const OpportunityApplied = "Applied"

// CareerPreferences is the singleton document describing career direction.
type CareerPreferences struct {
	LastUpdated         time.Time `json:"last_updated,omitempty"`
	Resume              string    `json:"resume,omitempty"`
	Interests           []string  `json:"interests"`
	WorkValues          []string  `json:"work_values"`
	TargetRoles         []string  `json:"target_roles"`
	LocationPreferences []string  `json:"location_preferences"`
	NetworkSize         int       `json:"network_size" validate:"gte=0"`
}

// Skill is a self-assessed skill.
type Skill struct {
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	Base
	Name     string `json:"name" validate:"required,notblank"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
}

// Experience is an internship, job, project or volunteering entry.
type Experience struct {
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	Base
	Title        string `json:"title" validate:"required,notblank"`
	Organization string `json:"organization,omitempty"`
	Type         string `json:"type,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Opportunity is a role the student is tracking or has applied for.
type Opportunity struct {
	Deadline Date `json:"application_deadline"`
	Base
	Title   string `json:"title" validate:"required,notblank"`
	Company string `json:"company,omitempty"`
	Type    string `json:"type,omitempty"`
	Status  string `json:"status,omitempty"`
	URL     string `json:"url,omitempty" validate:"omitempty,url"`
}
