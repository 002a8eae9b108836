package model

import "time"

// Resource is an entry in the student's resource directory.
type Resource struct {
	Base
	Name        string `json:"name" validate:"required,notblank"`
	Type        string `json:"type,omitempty"`
	Category    string `json:"category,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Contact     string `json:"contact,omitempty"`
	Hours       string `json:"hours,omitempty"`
	Cost        string `json:"cost,omitempty"`
}

// Bookmark pins a resource with optional notes.
type Bookmark struct {
	UpdatedAt time.Time `json:"updated_at,omitempty"`
	Base
	ResourceID string `json:"resource_id" validate:"required"`
	Notes      string `json:"notes,omitempty"`
}

// UsageLog records an interaction with a resource.
type UsageLog struct {
	At time.Time `json:"at"`
	Base
	ResourceID string `json:"resource_id" validate:"required"`
	Action     string `json:"action"`
}

// Scholarship is a catalog entry for a funding opportunity.
type Scholarship struct {
	Name        string `json:"name"`
	Provider    string `json:"provider"`
	Amount      string `json:"amount"`
	Eligibility string `json:"eligibility"`
	Deadline    string `json:"deadline"`
	Website     string `json:"website"`
}
