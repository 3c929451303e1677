// Package user holds accounts, roles and the sessions binding browsers to them.
package user

import (
	"context"
	"strings"
	"time"

	"labmanager/internal/shared/errors"
)

// Role is a named permission tier.
type Role struct {
	ID          int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"column:name;size:50;not null;uniqueIndex" validate:"required,max=50"`
	Description string `json:"description" gorm:"column:description;size:255" validate:"omitempty,max=255"`
}

func (Role) TableName() string { return "roles" }

// User is an account able to log in. Password is write-only: it is accepted on
// create/update, hashed into PasswordHash and never serialized back.
type User struct {
	ID           int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"column:email;size:255;not null;uniqueIndex" validate:"required,email,max=255"`
	Password     string    `json:"password,omitempty" gorm:"-" validate:"omitempty,min=8,max=72"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;size:100;not null" validate:"required,max=100"`
	LastName     string    `json:"last_name" gorm:"column:last_name;size:100;not null" validate:"required,max=100"`
	RoleID       int64     `json:"role_id" gorm:"column:role_id;not null;index" validate:"required,gt=0"`
	LabCode      *int64    `json:"lab_code" gorm:"column:lab_code;index" validate:"omitempty,gt=0"`
	FacultyID    *int64    `json:"faculty_id" gorm:"column:faculty_id;index" validate:"omitempty,gt=0"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`

	Role *Role `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID" validate:"-"`
}

func (User) TableName() string { return "users" }

// RoleName returns the loaded role's name, or "" when the role was not preloaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckFields rejects an account scoped to both a laboratory and a faculty.
func (u *User) CheckFields() []errors.FieldError {
	var out []errors.FieldError
	if u.LabCode != nil && u.FacultyID != nil {
		out = append(out, errors.FieldError{Field: "lab_code", Message: "lab_code and faculty_id are mutually exclusive"})
	}
	return out
}

// Repository loads and provisions accounts outside the generic resource engine.
type Repository interface {
	// GetByID returns the user with its role, or a NotFound error.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail matches the normalized email, or returns a NotFound error.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create inserts a user whose PasswordHash is already set.
	Create(ctx context.Context, user *User) error

	// RoleByName returns the named role, or a NotFound error.
	RoleByName(ctx context.Context, name string) (*Role, error)

	// EnsureRoles creates any of the named roles that do not exist yet.
	EnsureRoles(ctx context.Context, names []string) error
}

// PasswordHasher turns passwords into stored hashes and checks them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns an error when password does not match hash.
	Verify(password, hash string) error
	// VerifyDummy performs the work of Verify against no account. An error
	// means the work could not be done and timing is no longer flat.
	VerifyDummy(password string) error
}
