package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehr/leave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)

	PendingRequests(w http.ResponseWriter, r *http.Request)
	AllRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	workflow leave.Workflow
}

func NewLeaveHandler(workflow leave.Workflow) LeaveHandler {
	return &LeaveHandlerImpl{workflow: workflow}
}

// SubmitRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Employee ID not found in token")
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	requestID, err := h.workflow.Submit(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", map[string]string{"request_id": requestID})
}

// MyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Employee ID not found in token")
		return
	}

	requests, err := h.workflow.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// MyBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.Unauthorized(w, "Employee ID not found in token")
		return
	}

	balance, err := h.workflow.BalanceSnapshot(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// PendingRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) PendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.workflow.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// AllRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) AllRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.workflow.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ApproveRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID, req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	if err := h.workflow.Approve(r.Context(), requestID, req.AdminRemark); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave approved successfully", nil)
}

// RejectRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID, req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	if err := h.workflow.Reject(r.Context(), requestID, req.AdminRemark); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave rejected successfully", nil)
}

func (h *LeaveHandlerImpl) decodeDecision(w http.ResponseWriter, r *http.Request) (string, leave.DecisionRequest, bool) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return "", leave.DecisionRequest{}, false
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("decision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return "", leave.DecisionRequest{}, false
	}

	return requestID, req, true
}
