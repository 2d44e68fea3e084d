package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/pkg/database"
)

// WorkflowImpl implements leave.Workflow. Every state-changing operation runs
// inside one transaction, so validation always sees committed state and the
// balance mutation commits together with the request mutation.
type WorkflowImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	ledger *Ledger

	now func() time.Time
}

func NewWorkflow(
	tx database.Transactor,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	ledger *Ledger,
) *WorkflowImpl {
	return &WorkflowImpl{
		tx:                     tx,
		LeaveRequestRepository: requestRepo,
		LeaveBalanceRepository: balanceRepo,
		ledger:                 ledger,
		now:                    time.Now,
	}
}

// Submit implements leave.Workflow. Validation order: dates, overlap,
// balance existence, balance sufficiency. The balance is only checked here,
// never deducted; deduction happens at approval.
func (w *WorkflowImpl) Submit(ctx context.Context, employeeID int64, req leave.SubmitLeaveRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	leaveType, err := leave.ParseLeaveType(req.LeaveType)
	if err != nil {
		return "", err
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return "", fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return "", fmt.Errorf("failed to parse end date: %w", err)
	}
	start, end = leave.DateOnly(start), leave.DateOnly(end)

	var requestID string
	err = w.tx.WithTx(ctx, func(ctx context.Context) error {
		today := leave.DateOnly(w.now())
		if start.Before(today) {
			return leave.ErrStartDateInPast
		}
		if end.Before(start) {
			return leave.ErrEndBeforeStart
		}

		hasOverlap, err := w.LeaveRequestRepository.HasApprovedOverlap(ctx, employeeID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if hasOverlap {
			return leave.ErrOverlappingLeave
		}

		balance, err := w.LeaveBalanceRepository.GetByEmployeeID(ctx, employeeID)
		if err != nil {
			return err
		}

		days := leave.TotalDays(start, end)
		if available := balance.Available(leaveType); available < days {
			return &leave.InsufficientBalanceError{LeaveType: leaveType, Available: available, Required: days}
		}

		created, err := w.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID:  employeeID,
			LeaveType:   leaveType,
			StartDate:   start,
			EndDate:     end,
			Reason:      req.Reason,
			Status:      leave.LeaveRequestStatusPending,
			SubmittedAt: w.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		requestID = created.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("leave request submitted", "request_id", requestID, "employee_id", employeeID)
	return requestID, nil
}

// Approve implements leave.Workflow. The balance deduction and the status
// change commit as one unit; a concurrent approval of the same request is
// rolled back when the pending guard fails, so the balance is deducted
// exactly once.
func (w *WorkflowImpl) Approve(ctx context.Context, requestID string, adminRemark string) error {
	err := w.tx.WithTx(ctx, func(ctx context.Context) error {
		request, err := w.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrAlreadyProcessed
		}

		// A pending request submitted before an overlapping one was approved
		// passed the submit-time check; re-validate so approved ranges can
		// never intersect.
		hasOverlap, err := w.LeaveRequestRepository.HasApprovedOverlap(ctx, request.EmployeeID, request.StartDate, request.EndDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if hasOverlap {
			return leave.ErrOverlappingLeave
		}

		if _, err := w.LeaveBalanceRepository.GetByEmployeeID(ctx, request.EmployeeID); err != nil {
			return err
		}

		if err := w.ledger.Deduct(ctx, request.EmployeeID, request.LeaveType, request.TotalDays()); err != nil {
			return err
		}

		return w.LeaveRequestRepository.UpdateStatus(ctx, requestID, leave.LeaveRequestStatusApproved, adminRemark)
	})
	if err != nil {
		return err
	}

	slog.Info("leave request approved", "request_id", requestID)
	return nil
}

// Reject implements leave.Workflow. No balance interaction.
func (w *WorkflowImpl) Reject(ctx context.Context, requestID string, adminRemark string) error {
	err := w.tx.WithTx(ctx, func(ctx context.Context) error {
		request, err := w.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrAlreadyProcessed
		}

		return w.LeaveRequestRepository.UpdateStatus(ctx, requestID, leave.LeaveRequestStatusRejected, adminRemark)
	})
	if err != nil {
		return err
	}

	slog.Info("leave request rejected", "request_id", requestID)
	return nil
}

// ListByEmployee implements leave.Workflow.
func (w *WorkflowImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.LeaveRequestResponse, error) {
	requests, err := w.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListPending implements leave.Workflow.
func (w *WorkflowImpl) ListPending(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := w.LeaveRequestRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListAll implements leave.Workflow.
func (w *WorkflowImpl) ListAll(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := w.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave history: %w", err)
	}
	return toResponses(requests), nil
}

// BalanceSnapshot implements leave.Workflow.
func (w *WorkflowImpl) BalanceSnapshot(ctx context.Context, employeeID int64) (leave.LeaveBalanceResponse, error) {
	balance, err := w.LeaveBalanceRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return leave.NewLeaveBalanceResponse(balance), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}
