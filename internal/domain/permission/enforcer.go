package permission

// Enforcer decides whether a role may issue method against path.
type Enforcer interface {
	Enforce(role string, path string, method string) (bool, error)
	Rules() [][]string
	LoadPolicy() error
}
