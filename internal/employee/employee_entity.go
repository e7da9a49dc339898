package employee

import (
	"time"

	"go-ems/internal/department"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FirstName    string     `gorm:"size:100;not null"`
	LastName     string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Password     string     `gorm:"size:255;not null"`
	Role         Role       `gorm:"type:varchar(20);not null"`
	Status       Status     `gorm:"type:varchar(20);not null"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`

	// Read-only; writes omit associations so a department is never upserted
	// through an employee.
	Department *department.Department `gorm:"foreignKey:DepartmentID"`
}
