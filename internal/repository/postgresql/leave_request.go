package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date,
	lr.reason, lr.status, lr.admin_remark, lr.submitted_at, lr.created_at, lr.updated_at,
	e.name AS employee_name
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &lr.StartDate, &lr.EndDate,
		&lr.Reason, &lr.Status, &lr.AdminRemark, &lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	request.ID = id.String()

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, reason, status, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.LeaveType,
		request.StartDate, request.EndDate, request.Reason,
		request.Status, request.SubmittedAt,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// UpdateStatus implements leave.LeaveRequestRepository. The pending guard is
// part of the UPDATE so a request can never leave a terminal status.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, adminRemark string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET status = $1, admin_remark = $2, updated_at = NOW()
		WHERE id = $3
		AND status = 'pending'
	`

	result, err := q.Exec(ctx, query, status, adminRemark, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrAlreadyProcessed
	}
	return nil
}

// HasApprovedOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasApprovedOverlap(ctx context.Context, employeeID int64, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			AND status = 'approved'
			AND start_date <= $3
			AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists)

	return exists, err
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.employee_id = $1
		ORDER BY lr.submitted_at DESC
	`
	return r.list(ctx, query, employeeID)
}

// ListPending implements leave.LeaveRequestRepository. Oldest first, the
// order an approval queue is worked through.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.status = 'pending'
		ORDER BY lr.submitted_at ASC
	`
	return r.list(ctx, query)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		ORDER BY lr.submitted_at DESC
	`
	return r.list(ctx, query)
}

// DeleteByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE employee_id = $1`, employeeID)
	return err
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}

	return requests, rows.Err()
}
