// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package canon parses the canonical value text format of spec.md section
// 6 back into a value.Value. The format is a syntactic subset of the
// general expression grammar (literals, arrays, objects, type names), so
// parsing reuses internal/lang and internal/eval rather than a bespoke
// reader, evaluated against an empty environment since canonical text
// never contains identifiers or calls.
package canon

import (
	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/eval"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/value"
)

// Parse reads one canonical value from text. It round-trips with
// value.Format: Parse(value.Format(v)) == v for every v.
func Parse(text string) (value.Value, error) {
	expr, err := lang.ParseExpression(text)
	if err != nil {
		return value.Value{}, err
	}
	return eval.Eval(expr, env.Empty)
}
