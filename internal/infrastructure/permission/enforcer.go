package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"labmanager/internal/domain/permission"
	"labmanager/internal/shared/logger"
)

// modelText matches the role exactly, the request path with keyMatch2 and the
// HTTP method against an anchored regex.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

var _ permission.Enforcer = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer loads the permission table into casbin. When db is non-nil the
// table is also written to the casbin_rule table through the gorm adapter.
func NewEnforcer(policy permission.Policy, db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	rules := policy.Rules()
	lines := make([][]string, 0, len(rules))
	for _, r := range rules {
		lines = append(lines, []string{r.Role, r.Path, r.Method})
	}
	if _, err := enforcer.AddPolicies(lines); err != nil {
		return nil, fmt.Errorf("failed to add policies: %w", err)
	}

	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer.SetAdapter(adapter)
		if err := enforcer.SavePolicy(); err != nil {
			return nil, fmt.Errorf("failed to save policy: %w", err)
		}
	}

	log.Infow("permission table loaded", "rules", len(lines), "persisted", db != nil)

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role string, path string, method string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, path, method)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "path", path, "method", method)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// Rules returns the loaded policy lines as [role, path, method].
func (e *Enforcer) Rules() [][]string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	policy := e.enforcer.GetModel()["p"]["p"].Policy
	out := make([][]string, len(policy))
	for i, line := range policy {
		out[i] = append([]string(nil), line...)
	}
	return out
}

// LoadPolicy reloads rules from the casbin_rule table. Without persistence it is a no-op.
func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.enforcer.GetAdapter() == nil {
		return nil
	}
	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Infow("policy reloaded successfully")
	return nil
}
