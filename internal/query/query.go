// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package query implements the Damasc query engine: a lazy Cartesian
// enumeration over a bag's journal under distinct/with-repetition modes,
// per spec.md section 4.5. Results are exposed as a Go 1.23 iter.Seq2 pull
// sequence, the "pull-based sequence abstraction" spec.md section 9 calls
// for — the consumer drives iteration with range-over-func and can stop at
// any time by breaking, at which point the engine holds nothing further.
package query

import (
	"iter"

	"github.com/laszlokorte/damasc/internal/bag"
	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/eval"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/match"
	"github.com/laszlokorte/damasc/internal/value"
)

// Mode governs whether a single journal entry may satisfy more than one
// pattern position.
type Mode int

const (
	Distinct Mode = iota
	WithRepetition
)

// MaxPatterns is the join cardinality safeguard of spec.md section 9: a
// correctness backstop against accidental Cartesian blowups, enforced at
// construction (the spec calls for parse-time enforcement; callers that
// build a Query straight from parsed statement syntax satisfy that by
// calling New immediately after parsing).
const MaxPatterns = 6

// Query is an immutable, validated query description.
type Query struct {
	patterns   []*lang.Pattern
	projection *lang.Expression
	predicate  *lang.Expression
	limit      *int
	mode       Mode
}

// New validates and constructs a Query.
func New(patterns []*lang.Pattern, projection, predicate *lang.Expression, limit *int, mode Mode) (*Query, error) {
	if len(patterns) == 0 {
		return nil, errs.QueryError("query requires at least one pattern")
	}
	if len(patterns) > MaxPatterns {
		return nil, errs.QueryError("query exceeds maximum join cardinality of 6 patterns")
	}
	if limit != nil && *limit < 0 {
		return nil, errs.QueryError("limit must be non-negative")
	}
	return &Query{patterns: patterns, projection: projection, predicate: predicate, limit: limit, mode: mode}, nil
}

// Run enumerates q's matches against b. The resulting sequence stops after
// an error (the second value is non-nil exactly once, as the final item)
// or after q's limit is reached, whichever comes first.
func (q *Query) Run(b *bag.Bag) iter.Seq2[value.Value, error] {
	journal := b.Journal()

	return func(yield func(value.Value, error) bool) {
		used := make([]bool, len(journal))
		chosen := make([]value.Value, len(q.patterns))
		yielded := 0
		var aborted error

		var recurse func(pos int, e *env.Env) bool
		recurse = func(pos int, e *env.Env) bool {
			if q.limit != nil && yielded >= *q.limit {
				return false
			}
			if pos == len(q.patterns) {
				if q.predicate != nil {
					ok, err := evalGate(q.predicate, e)
					if err != nil {
						aborted = err
						return false
					}
					if !ok {
						return true
					}
				}
				out, skip, err := projectRow(q.projection, chosen, e)
				if err != nil {
					aborted = err
					return false
				}
				if skip {
					return true
				}
				yielded++
				return yield(out, nil)
			}
			for idx, v := range journal {
				if q.mode == Distinct && used[idx] {
					continue
				}
				sub, err := tryMatch(q.patterns[pos], v, e)
				if err != nil {
					aborted = errs.QueryError(err.Error()) // non-NoMatch error aborts the whole query
					return false
				}
				if sub == nil {
					continue // NoMatch: try the next journal entry
				}
				used[idx] = true
				chosen[pos] = v
				cont := recurse(pos+1, sub)
				used[idx] = false
				if !cont {
					return false
				}
			}
			return true
		}

		recurse(0, env.Empty)
		if aborted != nil {
			yield(value.Value{}, aborted)
		}
	}
}

// tryMatch converts NoMatch into (nil, nil) so the caller can distinguish
// "this journal entry does not fit here, try another" from a real abort.
func tryMatch(pat *lang.Pattern, v value.Value, e *env.Env) (*env.Env, error) {
	sub, err := match.Match(pat, v, e)
	if err != nil {
		if errs.Is(err, errs.KindNoMatch) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// evalGate evaluates predicate and reports whether the tuple survives. A
// handful of error kinds arising from heterogeneous tuples (a predicate
// that indexes past the end of one candidate's array, say) are treated as
// "this tuple doesn't qualify" rather than aborting the whole query; other
// kinds propagate as QueryError per spec.md section 7.
func evalGate(predicate *lang.Expression, e *env.Env) (bool, error) {
	result, err := eval.Eval(predicate, e)
	if err != nil {
		if skippable(err) {
			return false, nil
		}
		return false, errs.QueryError(err.Error())
	}
	if result.Tag() != value.TagBoolean {
		return false, errs.QueryError("predicate must evaluate to Boolean")
	}
	return result.Bool(), nil
}

func projectRow(projection *lang.Expression, chosen []value.Value, e *env.Env) (value.Value, bool, error) {
	if projection == nil {
		return value.Array(chosen), false, nil
	}
	out, err := eval.Eval(projection, e)
	if err != nil {
		if skippable(err) {
			return value.Value{}, true, nil
		}
		return value.Value{}, false, errs.QueryError(err.Error())
	}
	return out, false, nil
}

func skippable(err error) bool {
	switch errs.Of(err) {
	case errs.KindMissingKey, errs.KindIndexOutOfRange, errs.KindTypeMismatch, errs.KindCastError:
		return true
	default:
		return false
	}
}
