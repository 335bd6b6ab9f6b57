// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package bag implements the Damasc bag store: a named multiset of values
// with an insertion-order journal and an optional schema, per spec.md
// section 4.4.
package bag

import (
	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/eval"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/match"
	"github.com/laszlokorte/damasc/internal/value"
)

// Bag is a multiset of values. The journal preserves insertion order so
// iteration (and the query engine built on top of it) is deterministic;
// counts track multiplicity by the value's canonical text.
type Bag struct {
	name    string
	schema  *Schema
	journal []value.Value
	counts  map[string]int
}

// New creates an empty, unconstrained or schema-constrained bag.
func New(name string, schema *Schema) *Bag {
	return &Bag{name: name, schema: schema, counts: make(map[string]int)}
}

func (b *Bag) Name() string     { return b.name }
func (b *Bag) Schema() *Schema  { return b.schema }

// Journal returns a copy of the insertion-order entries.
func (b *Bag) Journal() []value.Value {
	cp := make([]value.Value, len(b.journal))
	copy(cp, b.journal)
	return cp
}

// Count returns v's current multiplicity.
func (b *Bag) Count(v value.Value) int {
	return b.counts[value.Format(v)]
}

// Size returns the total cardinality (sum of multiplicities).
func (b *Bag) Size() int {
	return len(b.journal)
}

// Insert adds values all-or-nothing: either every value passes the
// schema (if any) and all are appended, or none are and an error is
// returned, per spec.md section 4.4.
func (b *Bag) Insert(values []value.Value) (int, error) {
	if b.schema != nil {
		if limit := b.schema.Limit(); limit != nil && b.Size()+len(values) > *limit {
			return 0, errs.BagError("insert exceeds schema limit")
		}
		for _, v := range values {
			if err := b.schema.Validate(v); err != nil {
				return 0, err
			}
		}
	}
	b.appendRaw(values)
	return len(values), nil
}

// appendRaw appends values to the journal unconditionally, bypassing any
// schema. Used by Insert (after validation) and by Load, which per
// spec.md section 4.4 always appends regardless of schema.
func (b *Bag) appendRaw(values []value.Value) {
	for _, v := range values {
		b.journal = append(b.journal, v)
		b.counts[value.Format(v)]++
	}
}

// Delete scans the journal in insertion order, removing values that match
// pattern (and predicate, if given) up to limit occurrences. It returns
// the number removed.
func (b *Bag) Delete(pattern *lang.Pattern, predicate *lang.Expression, limit *int) (int, error) {
	kept := b.journal[:0:0]
	removed := 0
	for _, v := range b.journal {
		if limit != nil && removed >= *limit {
			kept = append(kept, v)
			continue
		}
		matches, err := matchesDeletePredicate(pattern, predicate, v)
		if err != nil {
			return 0, err // a mid-scan error leaves the bag untouched, per spec.md section 7
		}
		if matches {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	// Recompute counts from kept alone: a failed scan above returns before
	// this point, so journal and counts are mutated together or not at all.
	b.journal = kept
	b.counts = make(map[string]int, len(kept))
	for _, v := range kept {
		b.counts[value.Format(v)]++
	}
	return removed, nil
}

func matchesDeletePredicate(pattern *lang.Pattern, predicate *lang.Expression, v value.Value) (bool, error) {
	bound, err := match.Match(pattern, v, env.Empty)
	if err != nil {
		if errs.Is(err, errs.KindNoMatch) {
			return false, nil
		}
		return false, err
	}
	if predicate == nil {
		return true, nil
	}
	result, err := eval.Eval(predicate, bound)
	if err != nil {
		return false, err
	}
	return result.Tag() == value.TagBoolean && result.Bool(), nil
}

// Pop removes one occurrence of v if present, returning 1 if it removed
// one, 0 otherwise — per the resolved open question in spec.md section 9,
// a missing value is not an error.
func (b *Bag) Pop(v value.Value) int {
	for i, cur := range b.journal {
		if value.Equal(cur, v) {
			b.journal = append(b.journal[:i], b.journal[i+1:]...)
			key := value.Format(v)
			b.counts[key]--
			if b.counts[key] <= 0 {
				delete(b.counts, key)
			}
			return 1
		}
	}
	return 0
}
