package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// balanceColumn maps a leave type onto its counter column. Types are parsed
// before they reach the repository, so an unknown value is a programming
// error, not user input.
func balanceColumn(t leave.LeaveType) (string, error) {
	switch t {
	case leave.LeaveTypeAnnual:
		return "annual_days", nil
	case leave.LeaveTypeSick:
		return "sick_days", nil
	case leave.LeaveTypeCasual:
		return "casual_days", nil
	case leave.LeaveTypeOther:
		return "other_days", nil
	}
	return "", fmt.Errorf("no balance column for leave type %q", t)
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (employee_id, annual_days, sick_days, casual_days, other_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.Annual, balance.Sick, balance.Casual, balance.Other,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// GetByEmployeeID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID int64) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, annual_days, sick_days, casual_days, other_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
	`

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&balance.ID, &balance.EmployeeID,
		&balance.Annual, &balance.Sick, &balance.Casual, &balance.Other,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return balance, nil
}

// Deduct implements leave.LeaveBalanceRepository. The non-negative guard is
// part of the UPDATE, so check and decrement happen as one atomic statement.
func (r *leaveBalanceRepositoryImpl) Deduct(ctx context.Context, employeeID int64, leaveType leave.LeaveType, days int) error {
	col, err := balanceColumn(leaveType)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf(`
		UPDATE leave_balances
		SET %s = %s - $1, updated_at = NOW()
		WHERE employee_id = $2
		AND %s >= $1
	`, col, col, col)

	result, err := q.Exec(ctx, query, days, employeeID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// Restore implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Restore(ctx context.Context, employeeID int64, leaveType leave.LeaveType, days int) error {
	col, err := balanceColumn(leaveType)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf(`
		UPDATE leave_balances
		SET %s = %s + $1, updated_at = NOW()
		WHERE employee_id = $2
	`, col, col)

	result, err := q.Exec(ctx, query, days, employeeID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// DeleteByEmployeeID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM leave_balances WHERE employee_id = $1`, employeeID)
	return err
}
