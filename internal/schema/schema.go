// Package schema holds the registered universe of known cfg condition names.
// A schema is built once, before checking starts, and is read-only for the
// rest of the run; the checker and the suggestion engine rely on that.
package schema

import (
	"crypto/md5"
	"encoding/hex"
	"io"
)

type declaration struct {
	values       []string
	unrestricted bool
}

// Schema distinguishes well-known names (environment-intrinsic, always
// valid) from user-declared names, which may carry a restricted value set.
type Schema struct {
	wellKnown      map[string]struct{}
	wellKnownOrder []string

	declared      map[string]*declaration
	declaredOrder []string
}

// New returns a schema pre-populated with the well-known names.
func New() *Schema {
	s := &Schema{
		wellKnown: make(map[string]struct{}, len(wellKnownNames)),
		declared:  make(map[string]*declaration),
	}
	for _, name := range wellKnownNames {
		s.wellKnown[name] = struct{}{}
		s.wellKnownOrder = append(s.wellKnownOrder, name)
	}
	return s
}

// Declare registers a user-declared name. A nil values slice means the name
// accepts any value (or none); an empty non-nil slice means every supplied
// value is unexpected. Declaring the same name again appends to its value
// set, preserving declaration order.
func (s *Schema) Declare(name string, values []string) {
	d, ok := s.declared[name]
	if !ok {
		d = &declaration{}
		s.declared[name] = d
		s.declaredOrder = append(s.declaredOrder, name)
	}
	if values == nil {
		d.unrestricted = true
		return
	}
	if d.values == nil {
		d.values = make([]string, 0, len(values))
	}
	for _, v := range values {
		if !contains(d.values, v) {
			d.values = append(d.values, v)
		}
	}
}

// IsKnownName reports whether name is well-known or user-declared.
// Total: never fails, unknown names just return false.
func (s *Schema) IsKnownName(name string) bool {
	if _, ok := s.wellKnown[name]; ok {
		return true
	}
	_, ok := s.declared[name]
	return ok
}

// IsWellKnown reports whether name is environment-intrinsic.
func (s *Schema) IsWellKnown(name string) bool {
	_, ok := s.wellKnown[name]
	return ok
}

// AllowedValues returns the declared value set for name in declaration
// order. ok is false for well-known names, for declared names without an
// explicit value set, and for unknown names: all of those are unrestricted
// as far as value checking goes.
func (s *Schema) AllowedValues(name string) (values []string, ok bool) {
	if _, well := s.wellKnown[name]; well {
		return nil, false
	}
	d, found := s.declared[name]
	if !found || d.unrestricted || d.values == nil {
		return nil, false
	}
	return d.values, true
}

// AllNames returns every known name: well-known first in registration
// order, then declared names in declaration order, de-duplicated. The order
// is stable across runs so suggestion tie-breaks are reproducible.
func (s *Schema) AllNames() []string {
	names := make([]string, 0, len(s.wellKnownOrder)+len(s.declaredOrder))
	names = append(names, s.wellKnownOrder...)
	for _, name := range s.declaredOrder {
		if _, well := s.wellKnown[name]; !well {
			names = append(names, name)
		}
	}
	return names
}

// DeclaredNames returns the user-declared names in declaration order.
func (s *Schema) DeclaredNames() []string {
	out := make([]string, len(s.declaredOrder))
	copy(out, s.declaredOrder)
	return out
}

// Fingerprint returns a stable hash of the schema contents, used to
// invalidate cached lint results when the declared universe changes.
func (s *Schema) Fingerprint() string {
	h := md5.New()
	for _, name := range s.wellKnownOrder {
		io.WriteString(h, "w:"+name+"\n")
	}
	for _, name := range s.declaredOrder {
		d := s.declared[name]
		io.WriteString(h, "d:"+name)
		if d.unrestricted {
			io.WriteString(h, "=*")
		}
		for _, v := range d.values {
			io.WriteString(h, "="+v)
		}
		io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
