package employee

import (
	"time"

	"github.com/leavehr/leave-backend-go/internal/pkg/validator"
)

type RegisterEmployeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Role        string `json:"role"`
}

func (r RegisterEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.Role != "" && r.Role != string(RoleEmployee) && r.Role != string(RoleAdmin) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be employee or admin"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
}

type EmployeeProfileResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Department  string    `json:"department"`
	Designation string    `json:"designation"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProfileResponse maps an employee onto its public projection. The
// password hash never leaves the domain.
func NewProfileResponse(e Employee) EmployeeProfileResponse {
	return EmployeeProfileResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Department:  e.Department,
		Designation: e.Designation,
		Role:        string(e.Role),
		CreatedAt:   e.CreatedAt,
	}
}
