// Package domain defines the core types for the DayPlan server: task items
// with subtasks, appointments, planning records, cycle tracking, checklists,
// and the peer-sharing model.
package domain

import "time"

// DateLayout is the canonical date representation used everywhere a calendar
// day is stored or compared. Day views match on this exact string, so rows
// must never carry timezone-shifted variants of the same day.
const DateLayout = "2006-01-02"

// TimeLayout is the canonical wall-clock representation for optional
// time-of-day fields (24h, zero-padded).
const TimeLayout = "15:04"

// Record provides common fields embedded in every persisted entity.
type Record struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (r *Record) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// ValidDate reports whether s is a canonical YYYY-MM-DD date string.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

// ValidTime reports whether s is a canonical HH:MM time string.
func ValidTime(s string) bool {
	t, err := time.Parse(TimeLayout, s)
	return err == nil && t.Format(TimeLayout) == s
}
