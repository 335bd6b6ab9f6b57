// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package env implements the immutable identifier environment used by the
// evaluator and pattern matcher. Extension never mutates the receiver,
// following the persistent-map design note of spec.md section 9: cheap to
// backtrack, since a failed pattern match can simply discard the extended
// environment it built and resume from the original.
package env

import "github.com/laszlokorte/damasc/internal/value"

// Env is a persistent mapping from identifier name to Value, built by
// chaining immutable frames. Lookup walks outward from the innermost frame.
type Env struct {
	name   string
	val    value.Value
	parent *Env
}

// Empty is the environment with no bindings.
var Empty *Env

// Extend returns a new environment with name bound to val, shadowing any
// existing binding of the same name. The receiver is unchanged.
func (e *Env) Extend(name string, val value.Value) *Env {
	return &Env{name: name, val: val, parent: e}
}

// Lookup returns the value bound to name, searching from the innermost
// frame outward.
func (e *Env) Lookup(name string) (value.Value, bool) {
	for f := e; f != nil; f = f.parent {
		if f.name == name {
			return f.val, true
		}
	}
	return value.Value{}, false
}

// Binding is one name/value pair captured by a pattern match.
type Binding struct {
	Name  string
	Value value.Value
}

// Since returns the bindings added on top of base to reach e, innermost
// first, stopping at the first frame shared with base (by identity). It is
// how the shell surfaces what a `let`/assignment statement just bound
// without the matcher needing to track that separately.
func (e *Env) Since(base *Env) []Binding {
	var out []Binding
	seen := make(map[string]bool)
	for f := e; f != base && f != nil; f = f.parent {
		if seen[f.name] {
			continue
		}
		seen[f.name] = true
		out = append(out, Binding{Name: f.name, Value: f.val})
	}
	return out
}

// Names returns every bound name, innermost first, without duplicates.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for f := e; f != nil; f = f.parent {
		if seen[f.name] {
			continue
		}
		seen[f.name] = true
		names = append(names, f.name)
	}
	return names
}
