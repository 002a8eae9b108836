package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by every list record stored in a collection.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	CreatedTime() time.Time
	SetCreatedAt(t time.Time)
}

// Base carries the identity fields shared by list records.
type Base struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

// RecordID returns the record's identifier.
func (b *Base) RecordID() string { return b.ID }

// SetRecordID assigns the record's identifier.
func (b *Base) SetRecordID(id string) { b.ID = id }

// CreatedTime returns the creation timestamp.
func (b *Base) CreatedTime() time.Time { return b.CreatedAt }

// SetCreatedAt assigns the creation timestamp.
func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }

// NewID returns a fresh random record identifier.
func NewID() string {
	return uuid.NewString()
}
