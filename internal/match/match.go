// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package match implements the Damasc pattern matcher: a pure function of
// pattern, value and incoming environment per spec.md section 4.3. It is
// the counterpart to internal/eval, sharing the lang.Pattern AST and the
// persistent internal/env.Env.
package match

import (
	"fmt"

	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/eval"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/value"
)

// Match attempts to match v against pat starting from e. On success it
// returns the extended environment; on failure it returns a NoMatch error
// and the original environment is left untouched — bindings built while
// walking a failing branch are simply discarded by the caller.
func Match(pat *lang.Pattern, v value.Value, e *env.Env) (*env.Env, error) {
	switch {
	case pat.Array != nil:
		return matchArray(pat.Array, v, e)
	case pat.Object != nil:
		return matchObject(pat.Object, v, e)
	case pat.Neg != nil:
		return matchLiteral(value.Int(-pat.Neg.Int), v, e)
	case pat.Lit != nil:
		lit, err := literalValue(pat.Lit)
		if err != nil {
			return nil, err
		}
		return matchLiteral(lit, v, e)
	case pat.Typed != nil:
		if pat.Typed.Name == "_" {
			return matchTypedDiscard(value.Tag(pat.Typed.Type), v, e)
		}
		return matchTypedCapture(pat.Typed.Name, value.Tag(pat.Typed.Type), v, e)
	case pat.Name != nil:
		if *pat.Name == "_" {
			return e, nil // Discard matches anything
		}
		return matchCapture(*pat.Name, v, e)
	}
	return nil, errs.NoMatch("empty pattern")
}

func literalValue(l *lang.PatLiteral) (value.Value, error) {
	switch {
	case l.Null != nil:
		return value.Null(), nil
	case l.True != nil:
		return value.Bool(true), nil
	case l.Fals != nil:
		return value.Bool(false), nil
	case l.Int != nil:
		return value.Int(*l.Int), nil
	case l.Str != nil:
		return value.Str(*l.Str), nil
	}
	return value.Value{}, errs.NoMatch("empty literal pattern")
}

func matchLiteral(lit, v value.Value, e *env.Env) (*env.Env, error) {
	if !value.Equal(lit, v) {
		return nil, errs.NoMatch(fmt.Sprintf("value does not equal literal %s", value.Format(lit)))
	}
	return e, nil
}

func matchTypedDiscard(t value.Tag, v value.Value, e *env.Env) (*env.Env, error) {
	if v.Tag() != t {
		return nil, errs.NoMatch(fmt.Sprintf("expected type %s, got %s", t, v.Tag()))
	}
	return e, nil
}

// matchCapture binds name to v, or — if name is already bound — requires
// the existing binding to structurally equal v (re-affirmation).
func matchCapture(name string, v value.Value, e *env.Env) (*env.Env, error) {
	if existing, ok := e.Lookup(name); ok {
		if !value.Equal(existing, v) {
			return nil, errs.NoMatch(fmt.Sprintf("%s already bound to a different value", name))
		}
		return e, nil
	}
	return e.Extend(name, v), nil
}

func matchTypedCapture(name string, t value.Tag, v value.Value, e *env.Env) (*env.Env, error) {
	if v.Tag() != t {
		return nil, errs.NoMatch(fmt.Sprintf("expected type %s, got %s", t, v.Tag()))
	}
	return matchCapture(name, v, e)
}

// restMode mirrors the spec's Array/Object RestSpec.
type restMode int

const (
	restExact restMode = iota
	restDiscard
	restCollect
)

func matchArray(pat *lang.ArrayPat, v value.Value, e *env.Env) (*env.Env, error) {
	if v.Tag() != value.TagArray {
		return nil, errs.NoMatch(fmt.Sprintf("expected Array, got %s", v.Tag()))
	}
	items, mode, collectName, err := arrayItems(pat)
	if err != nil {
		return nil, err
	}
	elems := v.Items()
	if len(elems) < len(items) {
		return nil, errs.NoMatch("array shorter than pattern")
	}
	if mode == restExact && len(elems) != len(items) {
		return nil, errs.NoMatch("array length does not match pattern exactly")
	}
	cur := e
	for i, p := range items {
		cur, err = Match(p, elems[i], cur)
		if err != nil {
			return nil, err
		}
	}
	if mode == restCollect {
		rest := value.Array(elems[len(items):])
		cur, err = matchCapture(collectName, rest, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func arrayItems(pat *lang.ArrayPat) (items []*lang.Pattern, mode restMode, collectName string, err error) {
	for i, el := range pat.Elements {
		isRest := el.RestName != nil || el.RestOpen != nil
		if isRest {
			if i != len(pat.Elements)-1 {
				return nil, 0, "", errs.ParseError(0, "]", "rest element must be last in an array pattern")
			}
			if el.RestName != nil {
				return items, restCollect, *el.RestName, nil
			}
			return items, restDiscard, "", nil
		}
		items = append(items, el.Item)
	}
	return items, restExact, "", nil
}

func matchObject(pat *lang.ObjectPat, v value.Value, e *env.Env) (*env.Env, error) {
	if v.Tag() != value.TagObject {
		return nil, errs.NoMatch(fmt.Sprintf("expected Object, got %s", v.Tag()))
	}
	cur := e
	matched := make(map[string]bool)
	var mode restMode
	var collectName string

	for i, el := range pat.Elements {
		isRest := el.RestName != nil || el.RestOpen != nil
		if isRest {
			if i != len(pat.Elements)-1 {
				return nil, errs.ParseError(0, "}", "rest element must be last in an object pattern")
			}
			if el.RestName != nil {
				mode, collectName = restCollect, *el.RestName
			} else {
				mode = restDiscard
			}
			continue
		}
		var err error
		cur, err = matchObjectElement(el, v, cur, matched)
		if err != nil {
			return nil, err
		}
	}

	switch mode {
	case restExact:
		if len(matched) != v.Len() {
			return nil, errs.NoMatch("object has extra keys")
		}
	case restCollect:
		var pairs []value.KV
		for _, kv := range v.Entries() {
			if !matched[kv.Key] {
				pairs = append(pairs, kv)
			}
		}
		rest := value.Object(pairs)
		var err error
		cur, err = matchCapture(collectName, rest, cur)
		if err != nil {
			return nil, err
		}
	case restDiscard:
		// extras permitted, nothing to do
	}
	return cur, nil
}

func matchObjectElement(el *lang.ObjectPatElement, obj value.Value, e *env.Env, matched map[string]bool) (*env.Env, error) {
	switch {
	case el.Keyed != nil:
		key, err := keyedKey(el.Keyed, e)
		if err != nil {
			return nil, err
		}
		v, ok := obj.Get(key)
		if !ok {
			return nil, errs.NoMatch(fmt.Sprintf("missing key %q", key))
		}
		matched[key] = true
		return Match(el.Keyed.Value, v, e)
	case el.Single != nil:
		key := el.Single.Name
		v, ok := obj.Get(key)
		if !ok {
			return nil, errs.NoMatch(fmt.Sprintf("missing key %q", key))
		}
		matched[key] = true
		if el.Single.Type != nil {
			return matchTypedCapture(key, value.Tag(*el.Single.Type), v, e)
		}
		return matchCapture(key, v, e)
	}
	return nil, errs.NoMatch("empty object pattern element")
}

func keyedKey(k *lang.KeyedPatProp, e *env.Env) (string, error) {
	if k.Computed != nil {
		v, err := eval.Eval(k.Computed, e)
		if err != nil {
			return "", err
		}
		if v.Tag() != value.TagString {
			return "", errs.TypeMismatch("[key]", "String", string(v.Tag()))
		}
		return v.Str(), nil
	}
	return k.Static, nil
}
