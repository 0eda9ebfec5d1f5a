// Package models defines server-side data models persisted in the database.
package models

import "time"

// Salon statuses.
const (
	SalonActive    = "active"
	SalonSuspended = "suspended"
)

// Salon is the tenant. Every other row belongs to exactly one salon.
type Salon struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	ActivationKeyHash string
	Status            string
	Plan              string
	// SubscriptionExpiresAt is nil while the salon is on the trial plan.
	SubscriptionExpiresAt *time.Time
	// AttendanceLockedUntil is the first date that is still editable; every
	// earlier date is locked. Nil means nothing is locked yet.
	AttendanceLockedUntil *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
