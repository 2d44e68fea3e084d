package http

import (
	"net/http"

	"github.com/leavehr/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehr/leave-backend-go/internal/handler/http/response"
	"github.com/leavehr/leave-backend-go/internal/service/report"
)

type ReportHandler interface {
	EmployeeDashboard(w http.ResponseWriter, r *http.Request)
	AdminDashboard(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService *report.ReportService
}

func NewReportHandler(reportService *report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// EmployeeDashboard implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Employee ID not found in token")
		return
	}

	dashboard, err := h.reportService.EmployeeDashboard(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// AdminDashboard implements ReportHandler.
func (h *ReportHandlerImpl) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.AdminDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}
