// Package common contains shared constants and sentinel errors used across
// the salon service components.
package common

// SessionCookieName is the cookie carrying the signed session blob.
const SessionCookieName = "salon_session"

// Session roles.
const (
	RoleSalon = "salon"
	RoleAdmin = "admin"
)

// DateLayout is the calendar date format used on the wire and in query params.
const DateLayout = "2006-01-02"
