package crud

import (
	"fmt"
	"sync"
)

// Registry maps route names to controllers, keeping registration order.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]Controller
	names       []string
}

func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]Controller)}
}

// Register adds c under its descriptor name.
func (r *Registry) Register(c Controller) error {
	d := c.Descriptor()
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.controllers[d.Name]; exists {
		return fmt.Errorf("resource %s registered twice", d.Name)
	}
	r.controllers[d.Name] = c
	r.names = append(r.names, d.Name)
	return nil
}

// MustRegister is Register for static wiring, panicking on a bad descriptor.
func (r *Registry) MustRegister(controllers ...Controller) {
	for _, c := range controllers {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Get(name string) (Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[name]
	return c, ok
}

// All returns the controllers in registration order.
func (r *Registry) All() []Controller {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Controller, len(r.names))
	for i, name := range r.names {
		out[i] = r.controllers[name]
	}
	return out
}

// Names returns the registered route names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}
