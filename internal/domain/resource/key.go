package resource

import (
	"fmt"
	"strings"

	"labmanager/internal/shared/errors"
)

// KeyPart is one column/value pair of a record key.
type KeyPart struct {
	Column string
	Value  any
}

// Key identifies one record. Parts follow the descriptor's key order.
type Key struct {
	Parts []KeyPart
}

// ParseKey builds a key from raw path segments, one per key column.
func ParseKey(d *Descriptor, raw []string) (Key, error) {
	if len(raw) != len(d.Key) {
		return Key{}, errors.NewInvalidQueryError(
			fmt.Sprintf("%s key requires %d segment(s)", d.Name, len(d.Key)))
	}
	parts := make([]KeyPart, len(d.Key))
	for i, col := range d.Key {
		v, err := col.Kind.Parse(raw[i])
		if err != nil {
			return Key{}, errors.NewInvalidQueryError(
				fmt.Sprintf("invalid %s", col.Name), err.Error())
		}
		parts[i] = KeyPart{Column: col.Name, Value: v}
	}
	return Key{Parts: parts}, nil
}

// Where returns the key as a column/value map usable in a gorm Where clause.
func (k Key) Where() map[string]any {
	m := make(map[string]any, len(k.Parts))
	for _, p := range k.Parts {
		m[p.Column] = p.Value
	}
	return m
}

// Values returns the key values in order.
func (k Key) Values() []any {
	out := make([]any, len(k.Parts))
	for i, p := range k.Parts {
		out[i] = p.Value
	}
	return out
}

// String renders the key as its path form, e.g. "INV-7/12".
func (k Key) String() string {
	segs := make([]string, len(k.Parts))
	for i, p := range k.Parts {
		segs[i] = fmt.Sprint(p.Value)
	}
	return strings.Join(segs, "/")
}
