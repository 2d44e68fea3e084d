package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leavehr/leave-backend-go/internal/domain/employee"
	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeService owns the employee lifecycle. Registration creates the
// default leave balance in the same transaction as the employee row; delete
// cascades over requests and balance before removing the employee.
type EmployeeService struct {
	tx database.Transactor
	employee.EmployeeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	requestRepo leave.LeaveRequestRepository,
) *EmployeeService {
	return &EmployeeService{
		tx:                     tx,
		EmployeeRepository:     employeeRepo,
		LeaveBalanceRepository: balanceRepo,
		LeaveRequestRepository: requestRepo,
	}
}

func (s *EmployeeService) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeProfileResponse{}, err
	}

	_, err := s.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return employee.EmployeeProfileResponse{}, employee.ErrEmailExists
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeProfileResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeProfileResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := employee.RoleEmployee
	if req.Role == string(employee.RoleAdmin) {
		role = employee.RoleAdmin
	}

	var created employee.Employee
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		created, err = s.EmployeeRepository.Create(ctx, employee.Employee{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Department:   req.Department,
			Designation:  req.Designation,
			Role:         role,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		if _, err := s.LeaveBalanceRepository.Create(ctx, leave.NewDefaultBalance(created.ID)); err != nil {
			return fmt.Errorf("failed to create leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeProfileResponse{}, err
	}

	slog.Info("employee registered", "employee_id", created.ID)
	return employee.NewProfileResponse(created), nil
}

func (s *EmployeeService) GetProfile(ctx context.Context, employeeID int64) (employee.EmployeeProfileResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeProfileResponse{}, err
	}
	return employee.NewProfileResponse(emp), nil
}

func (s *EmployeeService) List(ctx context.Context) ([]employee.EmployeeProfileResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	profiles := make([]employee.EmployeeProfileResponse, 0, len(employees))
	for _, emp := range employees {
		profiles = append(profiles, employee.NewProfileResponse(emp))
	}
	return profiles, nil
}

func (s *EmployeeService) Update(ctx context.Context, employeeID int64, req employee.UpdateEmployeeRequest) error {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

// Delete removes the employee and everything it owns. The cascade is an
// explicit step here, not a schema side effect: requests first, then the
// balance, then the employee row, all in one transaction.
func (s *EmployeeService) Delete(ctx context.Context, employeeID int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
			return err
		}
		if err := s.LeaveRequestRepository.DeleteByEmployeeID(ctx, employeeID); err != nil {
			return fmt.Errorf("failed to delete leave requests: %w", err)
		}
		if err := s.LeaveBalanceRepository.DeleteByEmployeeID(ctx, employeeID); err != nil {
			return fmt.Errorf("failed to delete leave balance: %w", err)
		}
		return s.EmployeeRepository.Delete(ctx, employeeID)
	})
	if err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", employeeID)
	return nil
}
