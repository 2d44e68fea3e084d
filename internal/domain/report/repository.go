package report

import (
	"context"
	"time"

	"github.com/leavehr/leave-backend-go/internal/domain/leave"
)

// ReportRepository - read-only aggregation queries for dashboards
type ReportRepository interface {
	CountEmployees(ctx context.Context) (int, error)
	CountRequestsByStatus(ctx context.Context, employeeID int64) (StatusCounts, error)
	CountAllByStatus(ctx context.Context, status leave.LeaveRequestStatus) (int, error)
	CountOnLeave(ctx context.Context, day time.Time) (int, error)
	LeaveTypeStats(ctx context.Context) (map[string]int, error)
	UpcomingApproved(ctx context.Context, employeeID int64, from time.Time, limit int) ([]leave.LeaveRequest, error)
	RecentByEmployee(ctx context.Context, employeeID int64, limit int) ([]leave.LeaveRequest, error)
	PendingOldestFirst(ctx context.Context, limit int) ([]leave.LeaveRequest, error)
	RecentApprovals(ctx context.Context, limit int) ([]leave.LeaveRequest, error)
}
