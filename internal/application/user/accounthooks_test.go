package user

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainUser "labmanager/internal/domain/user"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

func TestAccountHooks_BeforeSaveCreate(t *testing.T) {
	hasher := new(mockPasswordHasher)
	hasher.On("Hash", "correct-horse").Return("$2a$hash", nil)
	hooks := NewAccountHooks(hasher, new(mockSessionStore), logger.NewNop())

	u := &domainUser.User{Email: " Rector@Univ.EDU ", Password: "correct-horse"}
	require.NoError(t, hooks.BeforeSave(context.Background(), u, true))

	assert.Equal(t, "rector@univ.edu", u.Email)
	assert.Equal(t, "$2a$hash", u.PasswordHash)
	assert.Empty(t, u.Password)
	hasher.AssertExpectations(t)
}

func TestAccountHooks_BeforeSaveRequiresPasswordOnCreate(t *testing.T) {
	hasher := new(mockPasswordHasher)
	hooks := NewAccountHooks(hasher, new(mockSessionStore), logger.NewNop())

	err := hooks.BeforeSave(context.Background(), &domainUser.User{Email: "a@b.c"}, true)
	require.True(t, errors.IsValidationError(err))
	assert.Equal(t, "password", errors.GetAppError(err).Fields[0].Field)
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountHooks_BeforeSaveUpdateKeepsHash(t *testing.T) {
	hasher := new(mockPasswordHasher)
	hooks := NewAccountHooks(hasher, new(mockSessionStore), logger.NewNop())

	u := &domainUser.User{ID: 4, Email: "a@b.c", PasswordHash: "$2a$old"}
	require.NoError(t, hooks.BeforeSave(context.Background(), u, false))
	assert.Equal(t, "$2a$old", u.PasswordHash)
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountHooks_BeforeSaveHashFailure(t *testing.T) {
	hasher := new(mockPasswordHasher)
	hasher.On("Hash", "correct-horse").Return("", stderrors.New("entropy"))
	hooks := NewAccountHooks(hasher, new(mockSessionStore), logger.NewNop())

	err := hooks.BeforeSave(context.Background(), &domainUser.User{Password: "correct-horse"}, true)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
}

func TestAccountHooks_AfterDeleteDestroysSessions(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("DestroyByUser", mock.Anything, int64(9)).Return(nil).Once()
	hooks := NewAccountHooks(new(mockPasswordHasher), sessions, logger.NewNop())

	require.NoError(t, hooks.AfterDelete(context.Background(), &domainUser.User{ID: 9}))
	sessions.AssertExpectations(t)
}

func TestAccountHooks_AfterDeletePropagatesFailure(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("DestroyByUser", mock.Anything, int64(9)).Return(stderrors.New("redis down"))
	hooks := NewAccountHooks(new(mockPasswordHasher), sessions, logger.NewNop())

	assert.Error(t, hooks.AfterDelete(context.Background(), &domainUser.User{ID: 9}))
}
