package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labmanager/internal/domain/user"
	"labmanager/internal/domain/user/testutil"
	dbtestutil "labmanager/internal/infrastructure/database/testutil"
)

func TestSessionRepository(t *testing.T) {
	testutil.RunSessionStoreTests(t, func(t *testing.T, _ *testutil.Clock) user.SessionStore {
		return NewSessionRepository(dbtestutil.NewDB(t), testutil.SessionTTL)
	})
}

func TestSessionRepository_PurgeExpiredCounts(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	gdb := dbtestutil.NewDB(t)
	repo := NewSessionRepository(gdb, testutil.SessionTTL)

	require.NoError(t, repo.Create(ctx, testutil.NewSession(t, 1)))
	require.NoError(t, repo.Create(ctx, testutil.NewSession(t, 1)))
	clock.Advance(2 * testutil.SessionTTL)
	require.NoError(t, repo.Create(ctx, testutil.NewSession(t, 2)))

	removed, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	var remaining int64
	require.NoError(t, gdb.Model(&user.Session{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}

func TestSessionRepository_LookupPersistsTouch(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	gdb := dbtestutil.NewDB(t)
	repo := NewSessionRepository(gdb, testutil.SessionTTL)

	s := testutil.NewSession(t, 1)
	require.NoError(t, repo.Create(ctx, s))

	clock.Advance(10 * time.Minute)
	_, err := repo.Lookup(ctx, s.ID)
	require.NoError(t, err)

	var stored user.Session
	require.NoError(t, gdb.Where("id = ?", s.ID).Take(&stored).Error)
	assert.True(t, stored.ExpiresAt.Equal(clock.Now().Add(testutil.SessionTTL)))
}
