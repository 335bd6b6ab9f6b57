// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package bag

import "github.com/laszlokorte/damasc/internal/errs"

// DefaultBagName is the implicitly-existing bag every fresh store starts
// with, per spec.md section 3.
const DefaultBagName = "init"

// Store holds every named bag and tracks which one is current. Per the
// design note in spec.md section 9, a reference shell may keep one Store
// as process-wide state, but a library embedder should hold its own Store
// instance explicitly rather than rely on a package-level global — Store
// carries no package-level state of its own.
type Store struct {
	bags    map[string]*Bag
	current string
}

// NewStore returns a store with only the implicit "init" bag.
func NewStore() *Store {
	s := &Store{bags: make(map[string]*Bag), current: DefaultBagName}
	s.bags[DefaultBagName] = New(DefaultBagName, nil)
	return s
}

// Current returns the name of the active bag.
func (s *Store) Current() string { return s.current }

// CurrentBag returns the active bag.
func (s *Store) CurrentBag() *Bag { return s.bags[s.current] }

// Get returns the named bag, or (nil, false) if it does not exist.
func (s *Store) Get(name string) (*Bag, bool) {
	b, ok := s.bags[name]
	return b, ok
}

// Switch creates the bag if missing (unconstrained) and makes it current.
func (s *Store) Switch(name string) error {
	if err := validateBagName(name); err != nil {
		return err
	}
	if _, ok := s.bags[name]; !ok {
		s.bags[name] = New(name, nil)
	}
	s.current = name
	return nil
}

// Create makes a new constrained or unconstrained bag and switches to it.
// It is an error if the bag already exists, per `.bag NAME as PATTERN`.
func (s *Store) Create(name string, schema *Schema) (*Bag, error) {
	if err := validateBagName(name); err != nil {
		return nil, err
	}
	if _, ok := s.bags[name]; ok {
		return nil, errs.BagError("bag " + name + " already exists")
	}
	b := New(name, schema)
	s.bags[name] = b
	s.current = name
	return b, nil
}

func validateBagName(name string) error {
	if name == "" {
		return errs.BagError("bag name must not be empty")
	}
	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || r == '_') {
			return errs.BagError("bag name must match [a-z_]+")
		}
	}
	return nil
}
