package models

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half_day"
	AttendanceLeave   = "leave"
)

// Attendance is one staff member's record for one calendar day.
// CheckIn/CheckOut are "15:04" clock times, empty when not recorded.
type Attendance struct {
	ID       string
	SalonID  string
	StaffID  string
	WorkDate time.Time
	Status   string
	CheckIn  string
	CheckOut string
}

// AttendanceSummary counts statuses per staff member over a range.
type AttendanceSummary struct {
	StaffID string
	Present int
	Absent  int
	HalfDay int
	Leave   int
}
