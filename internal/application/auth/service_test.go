package auth

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"labmanager/internal/domain/user"
	"labmanager/internal/domain/user/testutil"
	infraAuth "labmanager/internal/infrastructure/auth"
	"labmanager/internal/infrastructure/cache"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/logger"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepository) RoleByName(ctx context.Context, name string) (*user.Role, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*user.Role)
	return r, args.Error(1)
}

func (m *mockUserRepository) EnsureRoles(ctx context.Context, names []string) error {
	return m.Called(ctx, names).Error(0)
}

type fixture struct {
	repo     *mockUserRepository
	sessions *cache.MemorySessionStore
	svc      *Service
	alice    *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hasher := infraAuth.NewBcryptPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	alice := testutil.NewUser(5, constants.RoleLabManager)
	alice.Email = "alice@lab.org"
	alice.PasswordHash = hash

	f := &fixture{
		repo:     new(mockUserRepository),
		sessions: cache.NewMemorySessionStore(testutil.SessionTTL),
		alice:    alice,
	}
	f.svc = NewService(f.repo, f.sessions, hasher, testutil.SessionTTL, logger.NewNop())
	return f
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	f.repo.On("GetByEmail", mock.Anything, "alice@lab.org").Return(f.alice, nil)

	res, err := f.svc.Login(context.Background(), LoginCommand{
		Email: "alice@lab.org", Password: "correct-horse", IPAddress: "10.1.1.1", UserAgent: "firefox",
	})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, res.User.ID)
	assert.Equal(t, constants.RoleLabManager, res.Session.Role)
	assert.Equal(t, "10.1.1.1", res.Session.IPAddress)

	stored, err := f.sessions.Lookup(context.Background(), res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, stored.UserID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.repo.On("GetByEmail", mock.Anything, "alice@lab.org").Return(f.alice, nil)
	f.repo.On("GetByEmail", mock.Anything, "ghost@lab.org").Return(nil, errors.NewNotFoundError("user not found"))
	ctx := context.Background()

	_, wrongPassword := f.svc.Login(ctx, LoginCommand{Email: "alice@lab.org", Password: "nope"})
	_, unknownEmail := f.svc.Login(ctx, LoginCommand{Email: "ghost@lab.org", Password: "nope"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, errors.GetAppError(wrongPassword).Code, errors.GetAppError(unknownEmail).Code)
	assert.True(t, errors.IsAuthError(unknownEmail))
	reason, _ := errors.FailureReason(unknownEmail)
	assert.Equal(t, errors.FailureUnknownEmail, reason)
	assert.Equal(t, 0, f.sessions.Len())
}

type brokenDummyHasher struct {
	*infraAuth.BcryptPasswordHasher
}

func (brokenDummyHasher) VerifyDummy(string) error {
	return stderrors.New("entropy exhausted")
}

func TestLogin_UnknownEmailLogsBrokenDummyCheck(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewFromSlog(slog.New(slog.NewJSONHandler(&buf, nil)))
	repo := new(mockUserRepository)
	repo.On("GetByEmail", mock.Anything, "ghost@lab.org").Return(nil, errors.NewNotFoundError("user not found"))
	hasher := brokenDummyHasher{infraAuth.NewBcryptPasswordHasher(bcrypt.MinCost)}
	svc := NewService(repo, cache.NewMemorySessionStore(testutil.SessionTTL), hasher, testutil.SessionTTL, log)

	_, err := svc.Login(context.Background(), LoginCommand{Email: "ghost@lab.org", Password: "nope"})

	reason, ok := errors.FailureReason(err)
	require.True(t, ok)
	assert.Equal(t, errors.FailureUnknownEmail, reason)
	assert.Contains(t, buf.String(), "dummy password check failed")
	assert.Contains(t, buf.String(), "entropy exhausted")
}

func TestLogin_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.On("GetByEmail", mock.Anything, "alice@lab.org").Return(nil, stderrors.New("connection refused"))

	_, err := f.svc.Login(context.Background(), LoginCommand{Email: "alice@lab.org", Password: "correct-horse"})
	require.Error(t, err)
	assert.False(t, errors.IsAuthError(err))
}

func TestLogout_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.repo.On("GetByEmail", mock.Anything, "alice@lab.org").Return(f.alice, nil)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, LoginCommand{Email: "alice@lab.org", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, res.Session.ID))
	require.NoError(t, f.svc.Logout(ctx, res.Session.ID))
	require.NoError(t, f.svc.Logout(ctx, ""))

	_, _, err = f.svc.CurrentUser(ctx, res.Session.ID)
	assert.True(t, errors.IsAuthError(err))
}

func TestCurrentUser(t *testing.T) {
	clock := testutil.NewClock(t, time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC))
	f := newFixture(t)
	f.repo.On("GetByEmail", mock.Anything, "alice@lab.org").Return(f.alice, nil)
	f.repo.On("GetByID", mock.Anything, f.alice.ID).Return(f.alice, nil)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, LoginCommand{Email: "alice@lab.org", Password: "correct-horse"})
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	u, s, err := f.svc.CurrentUser(ctx, res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, u.ID)
	assert.True(t, s.ExpiresAt.Equal(clock.Now().Add(testutil.SessionTTL)))

	clock.Advance(testutil.SessionTTL)
	_, _, err = f.svc.CurrentUser(ctx, res.Session.ID)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeSessionExpired, errors.GetAppError(err).Type)
}

func TestCurrentUser_MissingSessionID(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.CurrentUser(context.Background(), "")
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.GetAppError(err).Type)
}

func TestCurrentUser_RemovedUserDestroysSession(t *testing.T) {
	f := newFixture(t)
	f.repo.On("GetByEmail", mock.Anything, "alice@lab.org").Return(f.alice, nil)
	f.repo.On("GetByID", mock.Anything, f.alice.ID).Return(nil, errors.NewNotFoundError("user not found"))
	ctx := context.Background()

	res, err := f.svc.Login(ctx, LoginCommand{Email: "alice@lab.org", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = f.svc.CurrentUser(ctx, res.Session.ID)
	reason, ok := errors.FailureReason(err)
	require.True(t, ok)
	assert.Equal(t, errors.FailureAccountRemoved, reason)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestPurgeExpired(t *testing.T) {
	clock := testutil.NewClock(t, time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC))
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.sessions.Create(ctx, testutil.NewSession(t, 1)))
	clock.Advance(2 * testutil.SessionTTL)
	require.NoError(t, f.sessions.Create(ctx, testutil.NewSession(t, 2)))

	f.svc.PurgeExpired(ctx)
	assert.Equal(t, 1, f.sessions.Len())
}
