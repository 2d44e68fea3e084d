package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/domain/report"
	"github.com/leavehr/leave-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// CountEmployees implements report.ReportRepository.
func (r *reportRepositoryImpl) CountEmployees(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}

// CountRequestsByStatus returns pending/approved/rejected counts for one
// employee in a single query.
func (r *reportRepositoryImpl) CountRequestsByStatus(ctx context.Context, employeeID int64) (report.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_count,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) AS approved_count,
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected_count
		FROM leave_requests
		WHERE employee_id = $1
	`

	var counts report.StatusCounts
	err := q.QueryRow(ctx, query, employeeID).Scan(&counts.Pending, &counts.Approved, &counts.Rejected)
	if err != nil {
		return report.StatusCounts{}, fmt.Errorf("failed to count requests by status: %w", err)
	}
	return counts, nil
}

// CountAllByStatus implements report.ReportRepository.
func (r *reportRepositoryImpl) CountAllByStatus(ctx context.Context, status leave.LeaveRequestStatus) (int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, status).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return total, nil
}

// CountOnLeave counts employees with an approved request covering the day.
func (r *reportRepositoryImpl) CountOnLeave(ctx context.Context, day time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM leave_requests
		WHERE status = 'approved'
		AND start_date <= $1
		AND end_date >= $1
	`

	var total int
	err := q.QueryRow(ctx, query, day).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees on leave: %w", err)
	}
	return total, nil
}

// LeaveTypeStats implements report.ReportRepository.
func (r *reportRepositoryImpl) LeaveTypeStats(ctx context.Context) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type, COUNT(*)
		FROM leave_requests
		WHERE status = 'approved'
		GROUP BY leave_type
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave type stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var leaveType string
		var count int
		if err := rows.Scan(&leaveType, &count); err != nil {
			return nil, err
		}
		stats[leaveType] = count
	}

	return stats, rows.Err()
}

// UpcomingApproved implements report.ReportRepository.
func (r *reportRepositoryImpl) UpcomingApproved(ctx context.Context, employeeID int64, from time.Time, limit int) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.employee_id = $1
		AND lr.status = 'approved'
		AND lr.start_date >= $2
		ORDER BY lr.start_date ASC
		LIMIT $3
	`
	return r.listRequests(ctx, query, employeeID, from, limit)
}

// RecentByEmployee implements report.ReportRepository.
func (r *reportRepositoryImpl) RecentByEmployee(ctx context.Context, employeeID int64, limit int) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.employee_id = $1
		ORDER BY lr.submitted_at DESC
		LIMIT $2
	`
	return r.listRequests(ctx, query, employeeID, limit)
}

// PendingOldestFirst implements report.ReportRepository.
func (r *reportRepositoryImpl) PendingOldestFirst(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.status = 'pending'
		ORDER BY lr.submitted_at ASC
		LIMIT $1
	`
	return r.listRequests(ctx, query, limit)
}

// RecentApprovals implements report.ReportRepository.
func (r *reportRepositoryImpl) RecentApprovals(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.status = 'approved'
		ORDER BY lr.submitted_at DESC
		LIMIT $1
	`
	return r.listRequests(ctx, query, limit)
}

func (r *reportRepositoryImpl) listRequests(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
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
