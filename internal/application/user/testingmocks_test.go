package user

import (
	"context"

	"github.com/stretchr/testify/mock"

	domainUser "labmanager/internal/domain/user"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domainUser.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domainUser.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domainUser.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, u *domainUser.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) RoleByName(ctx context.Context, name string) (*domainUser.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*domainUser.Role)
	return r, args.Error(1)
}

func (m *mockUserRepository) EnsureRoles(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Verify(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}

func (m *mockPasswordHasher) VerifyDummy(password string) error {
	return m.Called(password).Error(0)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Create(ctx context.Context, s *domainUser.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSessionStore) Lookup(ctx context.Context, sessionID string) (*domainUser.Session, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(*domainUser.Session)
	return s, args.Error(1)
}

func (m *mockSessionStore) Destroy(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockSessionStore) DestroyByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
