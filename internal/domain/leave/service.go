package leave

import (
	"context"
)

// Workflow drives a leave request from submission to a terminal status.
// Balance is deducted only at approval, never at submission, so pending
// requests reserve nothing.
type Workflow interface {
	Submit(ctx context.Context, employeeID int64, req SubmitLeaveRequest) (string, error)
	Approve(ctx context.Context, requestID string, adminRemark string) error
	Reject(ctx context.Context, requestID string, adminRemark string) error

	ListByEmployee(ctx context.Context, employeeID int64) ([]LeaveRequestResponse, error)
	ListPending(ctx context.Context) ([]LeaveRequestResponse, error)
	ListAll(ctx context.Context) ([]LeaveRequestResponse, error)
	BalanceSnapshot(ctx context.Context, employeeID int64) (LeaveBalanceResponse, error)
}
