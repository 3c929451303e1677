// Package resource describes the generic, descriptor-driven CRUD model shared by
// every entity exposed through the API.
package resource

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the value kind of a key, filter or scope column.
type Kind int

const (
	KindInt Kind = iota
	KindString
)

// Parse converts a raw request value into the column's native type.
func (k Kind) Parse(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("value is empty")
	}
	switch k {
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// KeyColumn is one column of a (possibly composite) primary key.
type KeyColumn struct {
	Name string
	Kind Kind
	// Generated keys are assigned by the database and ignored on create.
	Generated bool
}

// Field is a filterable column.
type Field struct {
	Name string
	Kind Kind
}

// Column is a display/export column. Field may be a dotted path into an
// eagerly included record, e.g. "laboratory.lab_name".
type Column struct {
	Field string
	Label string
}

// Scope restricts a listing to one owning context (laboratory, faculty...).
// Without Via the scope compares Column directly; otherwise Column must be
// IN the sub-query Via, which takes the scope value as its single parameter.
type Scope struct {
	Name   string
	Column string
	Via    string
	Kind   Kind
}

// DeletePolicy decides what happens to dependent rows when a record is deleted.
type DeletePolicy int

const (
	// Restrict refuses the delete while dependent rows exist.
	Restrict DeletePolicy = iota
	// Cascade removes dependent rows in the same transaction.
	Cascade
)

func (p DeletePolicy) String() string {
	if p == Cascade {
		return "cascade"
	}
	return "restrict"
}

// Dependent is a table referencing this resource. Columns pair up, in order,
// with the descriptor's key columns.
type Dependent struct {
	Table   string
	Columns []string
	Policy  DeletePolicy
}

// Descriptor carries everything the generic controller needs to know about one entity.
type Descriptor struct {
	// Name is the route segment, e.g. "laboratory".
	Name  string
	Table string
	Key   []KeyColumn

	Searchable  []string
	Filters     []Field
	Sortable    []string
	DefaultSort string
	// Includes are gorm Preload names resolved one level deep.
	Includes []string

	Scopes       []Scope
	DefaultScope string

	Dependents []Dependent
	Columns    []Column
}

// KeyNames returns the key column names in order.
func (d *Descriptor) KeyNames() []string {
	names := make([]string, len(d.Key))
	for i, k := range d.Key {
		names[i] = k.Name
	}
	return names
}

// IsKey reports whether column is part of the primary key.
func (d *Descriptor) IsKey(column string) bool {
	for _, k := range d.Key {
		if k.Name == column {
			return true
		}
	}
	return false
}

// GeneratedKeys returns the key columns assigned by the database.
func (d *Descriptor) GeneratedKeys() []string {
	var out []string
	for _, k := range d.Key {
		if k.Generated {
			out = append(out, k.Name)
		}
	}
	return out
}

func (d *Descriptor) IsSortable(column string) bool {
	for _, s := range d.Sortable {
		if s == column {
			return true
		}
	}
	return false
}

func (d *Descriptor) IsSearchable(column string) bool {
	for _, s := range d.Searchable {
		if s == column {
			return true
		}
	}
	return false
}

// Filter looks up a filterable column.
func (d *Descriptor) Filter(name string) (Field, bool) {
	for _, f := range d.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Scope looks up a scope by name.
func (d *Descriptor) Scope(name string) (Scope, bool) {
	for _, s := range d.Scopes {
		if s.Name == name {
			return s, true
		}
	}
	return Scope{}, false
}

// Validate checks the descriptor for internal consistency.
func (d *Descriptor) Validate() error {
	if d.Name == "" || d.Table == "" {
		return fmt.Errorf("descriptor requires name and table")
	}
	if len(d.Key) == 0 {
		return fmt.Errorf("descriptor %s has no key columns", d.Name)
	}
	if d.DefaultSort != "" && !d.IsSortable(d.DefaultSort) {
		return fmt.Errorf("descriptor %s default sort %q is not sortable", d.Name, d.DefaultSort)
	}
	if d.DefaultScope != "" {
		if _, ok := d.Scope(d.DefaultScope); !ok {
			return fmt.Errorf("descriptor %s default scope %q is not declared", d.Name, d.DefaultScope)
		}
	}
	for _, s := range d.Scopes {
		if s.Column == "" {
			return fmt.Errorf("descriptor %s scope %q has no column", d.Name, s.Name)
		}
		if s.Via != "" && strings.Count(s.Via, "?") != 1 {
			return fmt.Errorf("descriptor %s scope %q sub-query must take exactly one parameter", d.Name, s.Name)
		}
	}
	for _, dep := range d.Dependents {
		if len(dep.Columns) != len(d.Key) {
			return fmt.Errorf("descriptor %s dependent %s columns do not match key", d.Name, dep.Table)
		}
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("descriptor %s has no columns", d.Name)
	}
	return nil
}
