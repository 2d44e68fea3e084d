package response

import (
	"errors"
	"net/http"

	"github.com/leavehr/leave-backend-go/internal/domain/employee"
	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/pkg/validator"
	"github.com/leavehr/leave-backend-go/internal/service/auth"
)

// HandleError maps domain errors to HTTP responses. Workflow outcomes are
// expected, recoverable results; only unknown errors become a 500 with a
// generic message.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound),
		errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrStartDateInPast),
		errors.Is(err, leave.ErrEndBeforeStart),
		errors.Is(err, leave.ErrOverlappingLeave),
		errors.Is(err, leave.ErrInvalidLeaveType),
		errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
