package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"labmanager/internal/domain/permission"
	"labmanager/internal/shared/constants"
	appLogger "labmanager/internal/shared/logger"
)

var domainRoutes = []string{"faculty", "laboratory", "assignment"}

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(permission.DefaultPolicy(domainRoutes), nil, appLogger.NewNop())
	require.NoError(t, err)
	return e
}

func TestEnforcerMatrix(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		role   string
		path   string
		method string
		want   bool
	}{
		{constants.RoleAdmin, "/user/4", "DELETE", true},
		{constants.RoleAdmin, "/export/laboratory", "GET", true},
		{constants.RoleRector, "/user", "GET", false},
		{constants.RoleRector, "/role/1", "PUT", false},
		{constants.RoleRector, "/laboratory", "POST", true},
		{constants.RoleLabManager, "/assignment/INV-7/12", "DELETE", true},
		{constants.RoleLabManager, "/export/faculty/3", "GET", true},
		{constants.RoleLabManager, "/export/faculty/3", "POST", false},
		{constants.RoleResearcher, "/faculty", "GET", true},
		{constants.RoleResearcher, "/faculty/1", "GET", true},
		{constants.RoleResearcher, "/faculty", "POST", false},
		{constants.RoleResearcher, "/faculty/1", "PUT", false},
		{constants.RoleResearcher, "/export/faculty", "GET", false},
		{constants.RoleResearcher, "/meta/faculty", "GET", true},
		{constants.RoleResearcher, "/meta", "GET", true},
		{constants.RoleResearcher, "/meta/user", "GET", false},
		{constants.RoleResearcher, "/meta/role", "GET", false},
		{constants.RoleLabManager, "/export/user", "GET", false},
		{constants.RoleRector, "/export/role", "GET", false},
		{constants.RoleAdmin, "/export/user", "GET", true},
		{constants.RoleResearcher, "/facultyx", "GET", false},
		{"intruder", "/faculty", "GET", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			allowed, err := e.Enforce(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestEnforcerRules(t *testing.T) {
	e := newTestEnforcer(t)

	rules := e.Rules()
	assert.Len(t, rules, len(permission.DefaultPolicy(domainRoutes).Rules()))
	assert.Contains(t, rules, []string{constants.RoleAdmin, "/*", "^(DELETE|GET|POST|PUT)$"})
	assert.NoError(t, e.LoadPolicy())
}

func TestEnforcerPersistsToDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(permission.DefaultPolicy(domainRoutes), db, appLogger.NewNop())
	require.NoError(t, err)

	var stored int64
	require.NoError(t, db.Table("casbin_rule").Count(&stored).Error)
	assert.Equal(t, int64(len(e.Rules())), stored)

	require.NoError(t, db.Exec("DELETE FROM casbin_rule WHERE v0 = ?", constants.RoleResearcher).Error)
	require.NoError(t, e.LoadPolicy())

	allowed, err := e.Enforce(constants.RoleResearcher, "/faculty", "GET")
	require.NoError(t, err)
	assert.False(t, allowed)
}
