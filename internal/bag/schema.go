// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package bag

import (
	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/eval"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/match"
	"github.com/laszlokorte/damasc/internal/value"
)

// Schema constrains inserts into a bag: every candidate value must match
// Pattern, optionally satisfy Predicate, and the bag's cardinality must
// stay within Limit. Schemas are validated once at construction time and
// are otherwise immutable, the same validated-constructor discipline the
// teacher repo uses for its domain value objects (name/type/capability
// checked once in NewProperty, never re-checked by callers).
type Schema struct {
	pattern   *lang.Pattern
	predicate *lang.Expression
	limit     *int
}

// NewSchema validates and constructs a Schema. pattern is required;
// predicate and limit are optional (nil means unconstrained).
func NewSchema(pattern *lang.Pattern, predicate *lang.Expression, limit *int) (*Schema, error) {
	if pattern == nil {
		return nil, errs.BagError("schema requires a pattern")
	}
	if limit != nil && *limit < 0 {
		return nil, errs.BagError("schema limit must be non-negative")
	}
	return &Schema{pattern: pattern, predicate: predicate, limit: limit}, nil
}

func (s *Schema) Pattern() *lang.Pattern      { return s.pattern }
func (s *Schema) Predicate() *lang.Expression { return s.predicate }
func (s *Schema) Limit() *int                 { return s.limit }

// Validate checks candidate against the schema, per spec.md section 4.4:
// the candidate must match Pattern against the empty environment (captures
// are discarded) and, if Predicate is set, evaluate it to Boolean(true) in
// the environment the match produced.
func (s *Schema) Validate(candidate value.Value) error {
	matched, err := match.Match(s.pattern, candidate, env.Empty)
	if err != nil {
		return err
	}
	if s.predicate == nil {
		return nil
	}
	result, err := eval.Eval(s.predicate, matched)
	if err != nil {
		return err
	}
	if result.Tag() != value.TagBoolean {
		return errs.TypeMismatch("schema predicate", "Boolean", string(result.Tag()))
	}
	if !result.Bool() {
		return errs.BagError("value does not satisfy schema predicate")
	}
	return nil
}
