package leave

import (
	"errors"
	"fmt"
)

var (
	ErrStartDateInPast     = errors.New("Start date cannot be in the past")
	ErrEndBeforeStart      = errors.New("End date must be after or equal to start date")
	ErrOverlappingLeave    = errors.New("Leave dates overlap with existing approved leave")
	ErrBalanceNotFound     = errors.New("Leave balance not found")
	ErrRequestNotFound     = errors.New("Leave request not found")
	ErrAlreadyProcessed    = errors.New("Leave request has already been processed")
	ErrInvalidLeaveType    = errors.New("Invalid leave type")
	ErrInsufficientBalance = errors.New("Insufficient leave balance")
)

// InsufficientBalanceError carries the shortfall so callers can render it.
// It matches ErrInsufficientBalance under errors.Is.
type InsufficientBalanceError struct {
	LeaveType LeaveType
	Available int
	Required  int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient %s leave balance: %d days available, %d days required",
		e.LeaveType, e.Available, e.Required)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
