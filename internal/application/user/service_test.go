package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainUser "labmanager/internal/domain/user"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

func TestService_CreateAdmin(t *testing.T) {
	repo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	admin := &domainUser.Role{ID: 1, Name: constants.RoleAdmin}

	repo.On("EnsureRoles", mock.Anything, constants.AllRoles).Return(nil)
	repo.On("RoleByName", mock.Anything, constants.RoleAdmin).Return(admin, nil)
	hasher.On("Hash", "bootstrap-pass").Return("$2a$hash", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domainUser.User) bool {
		return u.RoleID == 1 && u.PasswordHash == "$2a$hash" && u.Email == "root@lab.org"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domainUser.User).ID = 1
	}).Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domainUser.User{ID: 1, Email: "root@lab.org", Role: admin}, nil)

	svc := NewService(repo, hasher, logger.NewNop())
	u, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{
		Email:     "root@lab.org",
		Password:  "bootstrap-pass",
		FirstName: "Root",
		LastName:  "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, u.RoleName())

	repo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

func TestService_CreateAdminValidates(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewService(repo, new(mockPasswordHasher), logger.NewNop())

	_, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{Email: "not-an-email", Password: "short"})
	require.True(t, errors.IsValidationError(err))
	repo.AssertNotCalled(t, "EnsureRoles", mock.Anything, mock.Anything)
}

func TestService_CreateAdminDuplicate(t *testing.T) {
	repo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	repo.On("EnsureRoles", mock.Anything, constants.AllRoles).Return(nil)
	repo.On("RoleByName", mock.Anything, constants.RoleAdmin).Return(&domainUser.Role{ID: 1, Name: constants.RoleAdmin}, nil)
	hasher.On("Hash", "bootstrap-pass").Return("$2a$hash", nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.NewConflictError("user already exists"))

	svc := NewService(repo, hasher, logger.NewNop())
	_, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{
		Email: "root@lab.org", Password: "bootstrap-pass", FirstName: "Root", LastName: "Admin",
	})
	assert.True(t, errors.IsConflictError(err))
}
