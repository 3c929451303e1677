package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"labmanager/internal/domain/user"
	"labmanager/internal/shared/db"
	apperrors "labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository covers the account lookups authentication and provisioning
// need beyond the generic resource repository.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	if err := db.Conn(ctx, r.db).Preload("Role").Where("id = ?", id).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := db.Conn(ctx, r.db).Preload("Role").
		Where("email = ?", user.NormalizeEmail(email)).
		Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// Create inserts a user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.Email = user.NormalizeEmail(u.Email)

	if err := db.Conn(ctx, r.db).Omit(clause.Associations).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("user already exists", u.Email)
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Infow("user created successfully", "id", u.ID, "email", u.Email)
	return nil
}

// RoleByName retrieves a role by its unique name
func (r *UserRepository) RoleByName(ctx context.Context, name string) (*user.Role, error) {
	var role user.Role
	if err := db.Conn(ctx, r.db).Where("name = ?", name).Take(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("role not found", name)
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

// EnsureRoles inserts missing roles, leaving existing ones untouched
func (r *UserRepository) EnsureRoles(ctx context.Context, names []string) error {
	conn := db.Conn(ctx, r.db)
	for _, name := range names {
		var count int64
		if err := conn.Model(&user.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check role %s: %w", name, err)
		}
		if count > 0 {
			continue
		}
		role := user.Role{Name: name}
		if err := conn.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", name, err)
		}
		r.logger.Infow("role seeded", "name", name, "id", role.ID)
	}
	return nil
}
