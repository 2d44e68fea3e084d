package report

import (
	"context"
	"fmt"
	"time"

	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/domain/report"
)

const dashboardListLimit = 10

// ReportService shapes the read-only dashboard projections. It never mutates
// anything; all invariants live in the workflow.
type ReportService struct {
	reports  report.ReportRepository
	balances leave.LeaveBalanceRepository

	now func() time.Time
}

func NewReportService(reports report.ReportRepository, balances leave.LeaveBalanceRepository) *ReportService {
	return &ReportService{reports: reports, balances: balances, now: time.Now}
}

func (s *ReportService) EmployeeDashboard(ctx context.Context, employeeID int64) (report.EmployeeDashboard, error) {
	balance, err := s.balances.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return report.EmployeeDashboard{}, err
	}

	today := leave.DateOnly(s.now())
	upcoming, err := s.reports.UpcomingApproved(ctx, employeeID, today, 5)
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to get upcoming leaves: %w", err)
	}

	recent, err := s.reports.RecentByEmployee(ctx, employeeID, 5)
	if err != nil {
		return report.EmployeeDashboard{}, fmt.Errorf("failed to get recent requests: %w", err)
	}

	counts, err := s.reports.CountRequestsByStatus(ctx, employeeID)
	if err != nil {
		return report.EmployeeDashboard{}, err
	}

	return report.EmployeeDashboard{
		LeaveBalance:   leave.NewLeaveBalanceResponse(balance),
		UpcomingLeaves: toResponses(upcoming),
		RecentRequests: toResponses(recent),
		PendingCount:   counts.Pending,
		ApprovedCount:  counts.Approved,
		RejectedCount:  counts.Rejected,
	}, nil
}

func (s *ReportService) AdminDashboard(ctx context.Context) (report.AdminDashboard, error) {
	totalEmployees, err := s.reports.CountEmployees(ctx)
	if err != nil {
		return report.AdminDashboard{}, err
	}

	pendingCount, err := s.reports.CountAllByStatus(ctx, leave.LeaveRequestStatusPending)
	if err != nil {
		return report.AdminDashboard{}, err
	}

	approvedCount, err := s.reports.CountAllByStatus(ctx, leave.LeaveRequestStatusApproved)
	if err != nil {
		return report.AdminDashboard{}, err
	}

	onLeave, err := s.reports.CountOnLeave(ctx, leave.DateOnly(s.now()))
	if err != nil {
		return report.AdminDashboard{}, err
	}

	stats, err := s.reports.LeaveTypeStats(ctx)
	if err != nil {
		return report.AdminDashboard{}, err
	}

	pending, err := s.reports.PendingOldestFirst(ctx, dashboardListLimit)
	if err != nil {
		return report.AdminDashboard{}, fmt.Errorf("failed to get pending requests: %w", err)
	}

	approvals, err := s.reports.RecentApprovals(ctx, dashboardListLimit)
	if err != nil {
		return report.AdminDashboard{}, fmt.Errorf("failed to get recent approvals: %w", err)
	}

	return report.AdminDashboard{
		TotalEmployees:      totalEmployees,
		PendingCount:        pendingCount,
		EmployeesOnLeave:    onLeave,
		TotalApprovedLeaves: approvedCount,
		LeaveTypeStats:      stats,
		PendingRequests:     toResponses(pending),
		RecentApprovals:     toResponses(approvals),
	}, nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}
