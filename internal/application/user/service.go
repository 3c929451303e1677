// Package user provides account provisioning and the hooks tying the user
// resource to credentials and sessions.
package user

import (
	"context"
	"fmt"

	domainUser "labmanager/internal/domain/user"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
	"labmanager/internal/shared/utils"
)

// CreateAdminRequest carries the bootstrap administrator account.
type CreateAdminRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// Service provisions accounts outside the HTTP surface.
type Service struct {
	repo   domainUser.Repository
	hasher domainUser.PasswordHasher
	logger logger.Interface
}

func NewService(repo domainUser.Repository, hasher domainUser.PasswordHasher, logger logger.Interface) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// CreateAdmin creates an administrator, seeding the roles first when needed.
func (s *Service) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*domainUser.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if err := s.repo.EnsureRoles(ctx, constants.AllRoles); err != nil {
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}
	role, err := s.repo.RoleByName(ctx, constants.RoleAdmin)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to process password")
	}

	u := &domainUser.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       role.ID,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Infow("administrator created", "user_id", u.ID, "email", u.Email)
	return s.repo.GetByID(ctx, u.ID)
}
