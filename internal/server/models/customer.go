package models

import "time"

type Customer struct {
	ID        string
	SalonID   string
	Name      string
	Phone     string
	Email     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter is shared by list endpoints that support search and paging.
type ListFilter struct {
	Query  string
	Limit  int
	Offset int
}
