package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/leavehr/leave-backend-go/internal/domain/leave"
)

// Ledger applies and reverses category deductions against an employee's
// balance. The non-negative invariant lives in the repository's conditional
// update; the ledger turns a failed guard into an error that carries the
// shortfall.
type Ledger struct {
	balances leave.LeaveBalanceRepository
}

func NewLedger(balances leave.LeaveBalanceRepository) *Ledger {
	return &Ledger{balances: balances}
}

// Deduct removes days from one category counter. Returns
// *leave.InsufficientBalanceError when the category cannot cover the days.
func (l *Ledger) Deduct(ctx context.Context, employeeID int64, leaveType leave.LeaveType, days int) error {
	err := l.balances.Deduct(ctx, employeeID, leaveType, days)
	if err == nil {
		return nil
	}
	if !errors.Is(err, leave.ErrInsufficientBalance) {
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}

	balance, getErr := l.balances.GetByEmployeeID(ctx, employeeID)
	if getErr != nil {
		return getErr
	}
	return &leave.InsufficientBalanceError{
		LeaveType: leaveType,
		Available: balance.Available(leaveType),
		Required:  days,
	}
}

// Restore gives days back to a category counter. Not exercised by approve or
// reject; it exists so a future cancellation of approved leave can settle the
// balance through the same component that deducted it.
func (l *Ledger) Restore(ctx context.Context, employeeID int64, leaveType leave.LeaveType, days int) error {
	if err := l.balances.Restore(ctx, employeeID, leaveType, days); err != nil {
		return fmt.Errorf("failed to restore leave balance: %w", err)
	}
	return nil
}
