// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package errs defines the domain-level error kinds shared by the lexer,
// parser, evaluator, matcher, bag store and query engine. Every error
// constructed here carries a stable oops code so front-ends can switch on
// error class without string matching, mirroring the coded-error style of
// internal/access/policy/dsl in the teacher repository.
package errs

import (
	"github.com/samber/oops"
)

// Kind names a domain-level error class, independent of its Go type.
type Kind string

const (
	KindParseError          Kind = "ParseError"
	KindUnboundIdentifier   Kind = "UnboundIdentifier"
	KindTypeMismatch        Kind = "TypeMismatch"
	KindArithmeticError     Kind = "ArithmeticError"
	KindIndexOutOfRange     Kind = "IndexOutOfRange"
	KindMissingKey          Kind = "MissingKey"
	KindCastError           Kind = "CastError"
	KindBadArity            Kind = "BadArity"
	KindDuplicateObjectKey  Kind = "DuplicateObjectKey"
	KindNoMatch             Kind = "NoMatch"
	KindBagError            Kind = "BagError"
	KindQueryError          Kind = "QueryError"
)

// kindKey is the oops context key under which the Kind is stashed so Of can
// recover it later without re-parsing the message.
const kindKey = "kind"

func build(k Kind) oops.OopsErrorBuilder {
	return oops.Code(string(k)).With(kindKey, string(k))
}

// Of extracts the Kind from err, if err (or something it wraps) was built
// by this package. The zero Kind is returned otherwise.
func Of(err error) Kind {
	o, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	if v, ok := o.Context()[kindKey]; ok {
		if s, ok := v.(string); ok {
			return Kind(s)
		}
	}
	return Kind(o.Code())
}

// Is reports whether err belongs to the given Kind.
func Is(err error, k Kind) bool {
	return Of(err) == k
}

func ParseError(offset int, expected, message string) error {
	return build(KindParseError).
		With("offset", offset).
		With("expected", expected).
		Errorf("parse error at offset %d: %s", offset, message)
}

func UnboundIdentifier(name string) error {
	return build(KindUnboundIdentifier).
		With("identifier", name).
		Errorf("unbound identifier %q", name)
}

func TypeMismatch(op string, want string, got string) error {
	return build(KindTypeMismatch).
		With("op", op).
		With("want", want).
		With("got", got).
		Errorf("%s: expected %s, got %s", op, want, got)
}

func ArithmeticError(reason string) error {
	return build(KindArithmeticError).
		With("reason", reason).
		Errorf("arithmetic error: %s", reason)
}

func IndexOutOfRange(index int64, length int) error {
	return build(KindIndexOutOfRange).
		With("index", index).
		With("length", length).
		Errorf("index %d out of range for length %d", index, length)
}

func MissingKey(key string) error {
	return build(KindMissingKey).
		With("key", key).
		Errorf("missing key %q", key)
}

func CastError(from, to string) error {
	return build(KindCastError).
		With("from", from).
		With("to", to).
		Errorf("cannot cast %s to %s", from, to)
}

func BadArity(name string, want, got int) error {
	return build(KindBadArity).
		With("function", name).
		With("want", want).
		With("got", got).
		Errorf("%s: expected %d argument(s), got %d", name, want, got)
}

func DuplicateObjectKey(key string) error {
	return build(KindDuplicateObjectKey).
		With("key", key).
		Errorf("duplicate object key %q", key)
}

func NoMatch(reason string) error {
	return build(KindNoMatch).
		With("reason", reason).
		Errorf("no match: %s", reason)
}

func BagError(reason string) error {
	return build(KindBagError).
		With("reason", reason).
		Errorf("bag error: %s", reason)
}

func QueryError(reason string) error {
	return build(KindQueryError).
		With("reason", reason).
		Errorf("query error: %s", reason)
}
