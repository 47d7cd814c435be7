package query

import "strings"

// Key identifies a logical resource query as an ordered tuple of
// components, e.g. {"task", id, "subtasks"}. Equality is component-wise;
// invalidation matches on leading components.
type Key []string

// NewKey builds a key from its components.
func NewKey(parts ...string) Key {
	return Key(parts)
}

// String renders the key for use as a map/flight identity. Components
// are joined with a unit separator so a component containing "/" cannot
// collide with a longer key.
func (k Key) String() string {
	return strings.Join(k, "\x1f")
}

// Equal reports whether both keys have identical components.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether the first components of k match prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}
