package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee roles
const (
	RoleManager = "manager"
	RoleServer  = "server"
)

// Employee represents a staff member who signs in at a terminal
type Employee struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      string         `gorm:"size:32;unique;not null" json:"code"`
	FirstName string         `gorm:"size:255;not null" json:"first_name"`
	LastName  string         `gorm:"size:255" json:"last_name"`
	PIN       string         `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Role      string         `gorm:"size:32;default:'server'" json:"role"`
	DrawerNo  int            `gorm:"default:0" json:"drawer_no"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// FullName joins first and last name
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Roles returns the role list carried in access tokens. Managers can do
// everything a server can.
func (e *Employee) Roles() []string {
	if e.Role == RoleManager {
		return []string{RoleManager, RoleServer}
	}
	return []string{RoleServer}
}

// IsManager reports whether the employee holds the manager role
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}
