package leave

import (
	"time"

	"github.com/leavehr/leave-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave type is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	AdminRemark string `json:"admin_remark"`
}

type LeaveRequestResponse struct {
	ID           string    `json:"id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	LeaveType    string    `json:"leave_type"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	AdminRemark  *string   `json:"admin_remark,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
	TotalDays    int       `json:"total_days"`
}

type LeaveBalanceResponse struct {
	ID         int64 `json:"id"`
	EmployeeID int64 `json:"employee_id"`
	Annual     int   `json:"annual"`
	Sick       int   `json:"sick"`
	Casual     int   `json:"casual"`
	Other      int   `json:"other"`
}

// NewLeaveRequestResponse maps a persisted request onto its read projection.
func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		LeaveType:   string(r.LeaveType),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Reason:      r.Reason,
		Status:      string(r.Status),
		AdminRemark: r.AdminRemark,
		SubmittedAt: r.SubmittedAt,
		TotalDays:   r.TotalDays(),
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	return resp
}

// NewLeaveBalanceResponse maps a balance onto its read projection.
func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:         b.ID,
		EmployeeID: b.EmployeeID,
		Annual:     b.Annual,
		Sick:       b.Sick,
		Casual:     b.Casual,
		Other:      b.Other,
	}
}
