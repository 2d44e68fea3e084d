package leave

import (
	"strings"
	"time"
)

// LeaveType is a leave category with its own balance counter.
type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeOther  LeaveType = "other"
)

// ParseLeaveType maps user input onto a known leave type. Unknown values are
// a hard error rather than a silent category with zero available days.
func ParseLeaveType(s string) (LeaveType, error) {
	switch LeaveType(strings.ToLower(strings.TrimSpace(s))) {
	case LeaveTypeAnnual:
		return LeaveTypeAnnual, nil
	case LeaveTypeSick:
		return LeaveTypeSick, nil
	case LeaveTypeCasual:
		return LeaveTypeCasual, nil
	case LeaveTypeOther:
		return LeaveTypeOther, nil
	default:
		return "", ErrInvalidLeaveType
	}
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// Default entitlements granted at employee registration.
const (
	DefaultAnnualDays = 20
	DefaultSickDays   = 10
	DefaultCasualDays = 5
	DefaultOtherDays  = 0
)

// LeaveBalance entity. One row per employee; every counter stays >= 0.
type LeaveBalance struct {
	ID         int64
	EmployeeID int64

	Annual int
	Sick   int
	Casual int
	Other  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available returns the remaining entitlement for the given category.
func (b LeaveBalance) Available(t LeaveType) int {
	switch t {
	case LeaveTypeAnnual:
		return b.Annual
	case LeaveTypeSick:
		return b.Sick
	case LeaveTypeCasual:
		return b.Casual
	case LeaveTypeOther:
		return b.Other
	}
	return 0
}

// NewDefaultBalance is the balance created when an employee is registered.
func NewDefaultBalance(employeeID int64) LeaveBalance {
	return LeaveBalance{
		EmployeeID: employeeID,
		Annual:     DefaultAnnualDays,
		Sick:       DefaultSickDays,
		Casual:     DefaultCasualDays,
		Other:      DefaultOtherDays,
	}
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID int64
	LeaveType  LeaveType

	StartDate time.Time
	EndDate   time.Time

	Reason      string
	Status      LeaveRequestStatus
	AdminRemark *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	EmployeeName *string
}

// TotalDays counts the inclusive span of the request in calendar days.
func (r LeaveRequest) TotalDays() int {
	return TotalDays(r.StartDate, r.EndDate)
}

// TotalDays returns (end - start in days) + 1, both endpoints counted.
func TotalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// RangesOverlap reports whether two inclusive date ranges share at least one
// calendar day: s1 <= e2 AND s2 <= e1.
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// DateOnly truncates t to midnight UTC, the granularity all leave dates use.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
