package models

import "time"

// Appointment statuses. Everything except scheduled is terminal.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

type Appointment struct {
	ID         string
	SalonID    string
	CustomerID string
	StaffID    string
	ServiceID  string
	StartsAt   time.Time
	EndsAt     time.Time
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppointmentFilter selects appointments starting in [From, To).
type AppointmentFilter struct {
	From    time.Time
	To      time.Time
	StaffID string
}
