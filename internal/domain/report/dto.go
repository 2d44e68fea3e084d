package report

import (
	"github.com/leavehr/leave-backend-go/internal/domain/leave"
)

// EmployeeDashboard is the per-employee landing view.
type EmployeeDashboard struct {
	LeaveBalance   leave.LeaveBalanceResponse   `json:"leave_balance"`
	UpcomingLeaves []leave.LeaveRequestResponse `json:"upcoming_leaves"`
	RecentRequests []leave.LeaveRequestResponse `json:"recent_requests"`
	PendingCount   int                          `json:"pending_requests_count"`
	ApprovedCount  int                          `json:"approved_requests_count"`
	RejectedCount  int                          `json:"rejected_requests_count"`
}

// AdminDashboard is the company-wide view.
type AdminDashboard struct {
	TotalEmployees       int                          `json:"total_employees"`
	PendingCount         int                          `json:"pending_requests_count"`
	EmployeesOnLeave     int                          `json:"employees_on_leave_today"`
	TotalApprovedLeaves  int                          `json:"total_approved_leaves"`
	LeaveTypeStats       map[string]int               `json:"leave_type_stats"`
	PendingRequests      []leave.LeaveRequestResponse `json:"pending_requests"`
	RecentApprovals      []leave.LeaveRequestResponse `json:"recent_approvals"`
}

// StatusCounts groups an employee's requests by status.
type StatusCounts struct {
	Pending  int
	Approved int
	Rejected int
}
