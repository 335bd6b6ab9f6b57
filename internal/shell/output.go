// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package shell implements the reference front-end surface of spec.md
// section 6: statement evaluation (expressions, let/assignment), the
// dot-command bag/query language, and the Output values both report back
// to a caller. It is the "reference shell" spec.md section 9 calls out as
// holding process-wide bag state; library embedders hold their own Store
// instead.
package shell

import (
	"fmt"
	"strings"

	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/value"
)

// Kind identifies which variant of spec.md section 6's Output union a
// value carries.
type Kind string

const (
	KindValue     Kind = "Value"
	KindMatch     Kind = "Match"
	KindOk        Kind = "Ok"
	KindBagStatus Kind = "BagStatus"
	KindQueryRow  Kind = "QueryRow"
	KindError     Kind = "Error"
)

// Output is one reported result of evaluating a statement or dot-command.
// Only the fields relevant to Kind are populated.
type Output struct {
	Kind       Kind
	Value      value.Value
	Bindings   []env.Binding
	Text       string
	ErrKind    errs.Kind
	ErrMessage string
}

func valueOutput(v value.Value) Output { return Output{Kind: KindValue, Value: v} }

func matchOutput(bindings []env.Binding) Output { return Output{Kind: KindMatch, Bindings: bindings} }

func okOutput() Output { return Output{Kind: KindOk} }

func bagStatusOutput(text string) Output { return Output{Kind: KindBagStatus, Text: text} }

func queryRowOutput(v value.Value) Output { return Output{Kind: KindQueryRow, Value: v} }

func errorOutput(err error) Output {
	return Output{Kind: KindError, ErrKind: errs.Of(err), ErrMessage: err.Error()}
}

// String renders o the way a terminal front-end would print one result
// line. It is not used internally; it exists for cmd/damasc and other
// embedders that want a default rendering without re-deriving one.
func (o Output) String() string {
	switch o.Kind {
	case KindValue, KindQueryRow:
		return value.Format(o.Value)
	case KindMatch:
		parts := make([]string, len(o.Bindings))
		for i, b := range o.Bindings {
			parts[i] = fmt.Sprintf("%s = %s", b.Name, value.Format(b.Value))
		}
		return strings.Join(parts, ", ")
	case KindOk:
		return "OK"
	case KindBagStatus:
		return o.Text
	case KindError:
		return fmt.Sprintf("%s: %s", o.ErrKind, o.ErrMessage)
	default:
		return ""
	}
}
