package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/leavehr/leave-backend-go/internal/domain/employee"
	"github.com/leavehr/leave-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("Invalid email or password")

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string                           `json:"access_token"`
	ExpiresAt   int64                            `json:"expires_at"`
	Employee    employee.EmployeeProfileResponse `json:"employee"`
}

type AuthService struct {
	employees  employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employees employee.EmployeeRepository, jwtService jwt.Service) *AuthService {
	return &AuthService{employees: employees, jwtService: jwtService}
}

// Login verifies credentials and issues an access token. A missing employee
// and a bad password both map to ErrInvalidCredentials so the response does
// not leak which one failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	emp, err := s.employees.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return LoginResponse{}, ErrInvalidCredentials
		}
		return LoginResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Employee:    employee.NewProfileResponse(emp),
	}, nil
}
