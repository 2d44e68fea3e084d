package employee

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Employee entity
type Employee struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Department   string
	Designation  string
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
