package leave

import (
	"context"
	"time"
)

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeID(ctx context.Context, employeeID int64) (LeaveBalance, error)
	// Deduct decrements one category counter, refusing to go below zero.
	// The check and the decrement are a single atomic statement; a failed
	// guard surfaces as ErrInsufficientBalance.
	Deduct(ctx context.Context, employeeID int64, leaveType LeaveType, days int) error
	// Restore is the inverse of Deduct, used to give days back.
	Restore(ctx context.Context, employeeID int64, leaveType LeaveType, days int) error
	DeleteByEmployeeID(ctx context.Context, employeeID int64) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// UpdateStatus moves a pending request to a terminal status. The guard on
	// the current status is part of the statement; ErrAlreadyProcessed when
	// the request is no longer pending.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, adminRemark string) error
	// HasApprovedOverlap reports whether [start,end] intersects any approved
	// request of the employee. Pending and rejected requests never block.
	HasApprovedOverlap(ctx context.Context, employeeID int64, start, end time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]LeaveRequest, error)
	ListPending(ctx context.Context) ([]LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	DeleteByEmployeeID(ctx context.Context, employeeID int64) error
}
