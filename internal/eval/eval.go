// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package eval implements the Damasc expression evaluator: a recursive
// walk of the lang.Expression precedence ladder producing a value.Value or
// a typed error, per spec.md section 4.2.
package eval

import (
	"math"
	"strconv"

	"github.com/laszlokorte/damasc/internal/env"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/value"
)

// Eval evaluates an expression in e, left to right, with no suspension:
// the core is single-threaded cooperative per spec.md section 5.
func Eval(expr *lang.Expression, e *env.Env) (value.Value, error) {
	return evalOr(expr.Or, e)
}

func evalOr(n *lang.LogicalOr, e *env.Env) (value.Value, error) {
	result := value.Bool(false)
	for i, op := range n.Ops {
		if i > 0 && result.Bool() {
			return result, nil // short-circuit: remaining operands are not evaluated
		}
		v, err := evalAnd(op, e)
		if err != nil {
			return value.Value{}, err
		}
		if v.Tag() != value.TagBoolean {
			return value.Value{}, errs.TypeMismatch("||", "Boolean", string(v.Tag()))
		}
		result = v
	}
	return result, nil
}

func evalAnd(n *lang.LogicalAnd, e *env.Env) (value.Value, error) {
	result := value.Bool(true)
	for i, op := range n.Ops {
		if i > 0 && !result.Bool() {
			return result, nil // short-circuit: remaining operands are not evaluated
		}
		v, err := evalComparison(op, e)
		if err != nil {
			return value.Value{}, err
		}
		if v.Tag() != value.TagBoolean {
			return value.Value{}, errs.TypeMismatch("&&", "Boolean", string(v.Tag()))
		}
		result = v
	}
	return result, nil
}

func evalComparison(n *lang.Comparison, e *env.Env) (value.Value, error) {
	cur, err := evalAdditive(n.Left, e)
	if err != nil {
		return value.Value{}, err
	}
	for _, tail := range n.Tails {
		switch {
		case tail.Rel != nil:
			rhs, err := evalAdditive(tail.Rel.Right, e)
			if err != nil {
				return value.Value{}, err
			}
			cur, err = evalRel(tail.Rel.Op, cur, rhs)
			if err != nil {
				return value.Value{}, err
			}
		case tail.Is != nil:
			rhs, err := evalAdditive(tail.Is.Right, e)
			if err != nil {
				return value.Value{}, err
			}
			if rhs.Tag() != value.TagType {
				return value.Value{}, errs.TypeMismatch("is", "Type", string(rhs.Tag()))
			}
			cur = value.Bool(cur.Tag() == rhs.TypeTag())
		case tail.As != nil:
			cur, err = castValue(cur, value.Tag(tail.As.Type))
			if err != nil {
				return value.Value{}, err
			}
		}
	}
	return cur, nil
}

func evalRel(op string, l, r value.Value) (value.Value, error) {
	switch op {
	case "==":
		return value.Bool(value.Equal(l, r)), nil
	case "!=":
		return value.Bool(!value.Equal(l, r)), nil
	case "in":
		if l.Tag() != value.TagString {
			return value.Value{}, errs.TypeMismatch("in", "String", string(l.Tag()))
		}
		if r.Tag() != value.TagObject {
			return value.Value{}, errs.TypeMismatch("in", "Object", string(r.Tag()))
		}
		return value.Bool(r.Has(l.Str())), nil
	default:
		if l.Tag() != value.TagInteger || r.Tag() != value.TagInteger {
			return value.Value{}, errs.TypeMismatch(op, "Integer", mismatchedTag(l, r))
		}
		switch op {
		case "<":
			return value.Bool(l.Int() < r.Int()), nil
		case ">":
			return value.Bool(l.Int() > r.Int()), nil
		case "<=":
			return value.Bool(l.Int() <= r.Int()), nil
		case ">=":
			return value.Bool(l.Int() >= r.Int()), nil
		}
	}
	return value.Value{}, errs.TypeMismatch(op, "comparable", "")
}

func mismatchedTag(l, r value.Value) string {
	if l.Tag() != value.TagInteger {
		return string(l.Tag())
	}
	return string(r.Tag())
}

func evalAdditive(n *lang.Additive, e *env.Env) (value.Value, error) {
	cur, err := evalMul(n.Left, e)
	if err != nil {
		return value.Value{}, err
	}
	for _, t := range n.Tails {
		rhs, err := evalMul(t.Right, e)
		if err != nil {
			return value.Value{}, err
		}
		if cur.Tag() != value.TagInteger || rhs.Tag() != value.TagInteger {
			return value.Value{}, errs.TypeMismatch(t.Op, "Integer", mismatchedTag(cur, rhs))
		}
		switch t.Op {
		case "+":
			sum := cur.Int() + rhs.Int()
			if (rhs.Int() > 0 && sum < cur.Int()) || (rhs.Int() < 0 && sum > cur.Int()) {
				return value.Value{}, errs.ArithmeticError("overflow in addition")
			}
			cur = value.Int(sum)
		case "-":
			diff := cur.Int() - rhs.Int()
			if (rhs.Int() < 0 && diff < cur.Int()) || (rhs.Int() > 0 && diff > cur.Int()) {
				return value.Value{}, errs.ArithmeticError("overflow in subtraction")
			}
			cur = value.Int(diff)
		}
	}
	return cur, nil
}

func evalMul(n *lang.Multiplicative, e *env.Env) (value.Value, error) {
	cur, err := evalPower(n.Left, e)
	if err != nil {
		return value.Value{}, err
	}
	for _, t := range n.Tails {
		rhs, err := evalPower(t.Right, e)
		if err != nil {
			return value.Value{}, err
		}
		if cur.Tag() != value.TagInteger || rhs.Tag() != value.TagInteger {
			return value.Value{}, errs.TypeMismatch(t.Op, "Integer", mismatchedTag(cur, rhs))
		}
		switch t.Op {
		case "*":
			a, b := cur.Int(), rhs.Int()
			prod := a * b
			if a != 0 && prod/a != b {
				return value.Value{}, errs.ArithmeticError("overflow in multiplication")
			}
			cur = value.Int(prod)
		case "/":
			if rhs.Int() == 0 {
				return value.Value{}, errs.ArithmeticError("division by zero")
			}
			cur = value.Int(cur.Int() / rhs.Int()) // truncates toward zero, per Go semantics
		}
	}
	return cur, nil
}

func evalPower(n *lang.Power, e *env.Env) (value.Value, error) {
	base, err := evalUnary(n.Left, e)
	if err != nil {
		return value.Value{}, err
	}
	if n.Right == nil {
		return base, nil
	}
	exp, err := evalPower(n.Right, e)
	if err != nil {
		return value.Value{}, err
	}
	if base.Tag() != value.TagInteger || exp.Tag() != value.TagInteger {
		return value.Value{}, errs.TypeMismatch("^", "Integer", mismatchedTag(base, exp))
	}
	if exp.Int() < 0 {
		return value.Value{}, errs.ArithmeticError("negative exponent")
	}
	result := int64(1)
	b := base.Int()
	for i := int64(0); i < exp.Int(); i++ {
		next := result * b
		if b != 0 && next/b != result {
			return value.Value{}, errs.ArithmeticError("overflow in exponentiation")
		}
		result = next
	}
	return value.Int(result), nil
}

func evalUnary(n *lang.Unary, e *env.Env) (value.Value, error) {
	switch {
	case n.Bang != nil:
		v, err := evalUnary(n.Bang, e)
		if err != nil {
			return value.Value{}, err
		}
		if v.Tag() != value.TagBoolean {
			return value.Value{}, errs.TypeMismatch("!", "Boolean", string(v.Tag()))
		}
		return value.Bool(!v.Bool()), nil
	case n.Neg != nil:
		v, err := evalUnary(n.Neg, e)
		if err != nil {
			return value.Value{}, err
		}
		if v.Tag() != value.TagInteger {
			return value.Value{}, errs.TypeMismatch("-", "Integer", string(v.Tag()))
		}
		if v.Int() == math.MinInt64 {
			return value.Value{}, errs.ArithmeticError("overflow in negation")
		}
		return value.Int(-v.Int()), nil
	default:
		return evalPostfix(n.Operand, e)
	}
}

func evalPostfix(n *lang.Postfix, e *env.Env) (value.Value, error) {
	cur, err := evalPrimary(n.Primary, e)
	if err != nil {
		return value.Value{}, err
	}
	for _, s := range n.Suffixes {
		switch {
		case s.Index != nil:
			idx, err := Eval(s.Index, e)
			if err != nil {
				return value.Value{}, err
			}
			cur, err = index(cur, idx)
			if err != nil {
				return value.Value{}, err
			}
		case s.Dot != "":
			if cur.Tag() != value.TagObject {
				return value.Value{}, errs.TypeMismatch(".", "Object", string(cur.Tag()))
			}
			v, ok := cur.Get(s.Dot)
			if !ok {
				return value.Value{}, errs.MissingKey(s.Dot)
			}
			cur = v
		}
	}
	return cur, nil
}

// index implements bracket member access `a[b]`, per spec.md section 4.2/3.
func index(container, key value.Value) (value.Value, error) {
	switch container.Tag() {
	case value.TagArray:
		if key.Tag() != value.TagInteger {
			return value.Value{}, errs.TypeMismatch("[]", "Integer", string(key.Tag()))
		}
		v, ok := container.At(key.Int())
		if !ok {
			return value.Value{}, errs.IndexOutOfRange(key.Int(), container.Len())
		}
		return v, nil
	case value.TagString:
		if key.Tag() != value.TagInteger {
			return value.Value{}, errs.TypeMismatch("[]", "Integer", string(key.Tag()))
		}
		runes := []rune(container.Str())
		n := int64(len(runes))
		i := key.Int()
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return value.Value{}, errs.IndexOutOfRange(key.Int(), len(runes))
		}
		return value.Str(string(runes[i])), nil
	case value.TagObject:
		if key.Tag() != value.TagString {
			return value.Value{}, errs.TypeMismatch("[]", "String", string(key.Tag()))
		}
		v, ok := container.Get(key.Str())
		if !ok {
			return value.Value{}, errs.MissingKey(key.Str())
		}
		return v, nil
	default:
		return value.Value{}, errs.TypeMismatch("[]", "Array, String or Object", string(container.Tag()))
	}
}

func evalPrimary(n *lang.Primary, e *env.Env) (value.Value, error) {
	switch {
	case n.Paren != nil:
		return Eval(n.Paren, e)
	case n.TypeOf != nil:
		v, err := Eval(n.TypeOf.Arg, e)
		if err != nil {
			return value.Value{}, err
		}
		return value.TypeVal(v.Tag()), nil
	case n.Call != nil:
		return evalCall(n.Call, e)
	case n.ArrayLit != nil:
		return evalArrayLit(n.ArrayLit, e)
	case n.ObjectLit != nil:
		return evalObjectLit(n.ObjectLit, e)
	case n.Template != nil:
		return evalTemplate(*n.Template, e)
	case n.Null != nil:
		return value.Null(), nil
	case n.True != nil:
		return value.Bool(true), nil
	case n.False != nil:
		return value.Bool(false), nil
	case n.TypeLit != nil:
		return value.TypeVal(value.Tag(*n.TypeLit)), nil
	case n.Int != nil:
		return value.Int(*n.Int), nil
	case n.Str != nil:
		return value.Str(*n.Str), nil
	case n.Ident != nil:
		v, ok := e.Lookup(*n.Ident)
		if !ok {
			return value.Value{}, errs.UnboundIdentifier(*n.Ident)
		}
		return v, nil
	}
	return value.Value{}, errs.ParseError(0, "expression", "empty primary")
}

func evalCall(n *lang.CallExpr, e *env.Env) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := Eval(a, e)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	switch n.Name {
	case "length":
		if len(args) != 1 {
			return value.Value{}, errs.BadArity("length", 1, len(args))
		}
		switch args[0].Tag() {
		case value.TagString, value.TagArray, value.TagObject:
			return value.Int(int64(args[0].Len())), nil
		default:
			return value.Value{}, errs.TypeMismatch("length", "String, Array or Object", string(args[0].Tag()))
		}
	case "type":
		if len(args) != 1 {
			return value.Value{}, errs.BadArity("type", 1, len(args))
		}
		return value.TypeVal(args[0].Tag()), nil
	default:
		return value.Value{}, errs.UnboundIdentifier(n.Name)
	}
}

func evalArrayLit(n *lang.ArrayLit, e *env.Env) (value.Value, error) {
	var items []value.Value
	for _, el := range n.Items {
		if el.Spread != nil {
			v, err := Eval(el.Spread, e)
			if err != nil {
				return value.Value{}, err
			}
			if v.Tag() != value.TagArray {
				return value.Value{}, errs.TypeMismatch("...", "Array", string(v.Tag()))
			}
			items = append(items, v.Items()...)
			continue
		}
		v, err := Eval(el.Single, e)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
	return value.Array(items), nil
}

func evalObjectLit(n *lang.ObjectLit, e *env.Env) (value.Value, error) {
	var pairs []value.KV
	for _, p := range n.Props {
		switch {
		case p.Spread != nil:
			v, err := Eval(p.Spread, e)
			if err != nil {
				return value.Value{}, err
			}
			if v.Tag() != value.TagObject {
				return value.Value{}, errs.TypeMismatch("...", "Object", string(v.Tag()))
			}
			pairs = append(pairs, v.Entries()...)
		case p.Computed != nil:
			k, err := Eval(p.Computed.Key, e)
			if err != nil {
				return value.Value{}, err
			}
			if k.Tag() != value.TagString {
				return value.Value{}, errs.TypeMismatch("[key]", "String", string(k.Tag()))
			}
			v, err := Eval(p.Computed.Value, e)
			if err != nil {
				return value.Value{}, err
			}
			pairs = append(pairs, value.KV{Key: k.Str(), Val: v})
		case p.KeyValue != nil:
			key := p.KeyValue.KeyIdent
			if key == "" {
				key = p.KeyValue.KeyString
			}
			v, err := Eval(p.KeyValue.Value, e)
			if err != nil {
				return value.Value{}, err
			}
			pairs = append(pairs, value.KV{Key: key, Val: v})
		case p.Shorthand != nil:
			v, ok := e.Lookup(*p.Shorthand)
			if !ok {
				return value.Value{}, errs.UnboundIdentifier(*p.Shorthand)
			}
			pairs = append(pairs, value.KV{Key: *p.Shorthand, Val: v})
		}
	}
	return value.Object(pairs), nil
}

func evalTemplate(raw string, e *env.Env) (value.Value, error) {
	chunks, err := lang.SplitTemplate(raw)
	if err != nil {
		return value.Value{}, err
	}
	var out []byte
	for _, c := range chunks {
		if c.Expr == nil {
			out = append(out, c.Literal...)
			continue
		}
		v, err := Eval(c.Expr, e)
		if err != nil {
			return value.Value{}, err
		}
		s, err := castValue(v, value.TagString)
		if err != nil {
			return value.Value{}, err
		}
		out = append(out, s.Str()...)
	}
	return value.Str(string(out)), nil
}

// castValue implements `as` conversions per spec.md section 4.2.
func castValue(v value.Value, target value.Tag) (value.Value, error) {
	if v.Tag() == target {
		return v, nil
	}
	switch {
	case v.Tag() == value.TagInteger && target == value.TagString:
		return value.Str(strconv.FormatInt(v.Int(), 10)), nil
	case v.Tag() == value.TagString && target == value.TagInteger:
		i, err := strconv.ParseInt(v.Str(), 10, 64)
		if err != nil {
			return value.Value{}, errs.CastError(string(v.Tag()), string(target))
		}
		return value.Int(i), nil
	case v.Tag() == value.TagBoolean && target == value.TagString:
		if v.Bool() {
			return value.Str("true"), nil
		}
		return value.Str("false"), nil
	case v.Tag() == value.TagString && target == value.TagBoolean:
		switch v.Str() {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		default:
			return value.Value{}, errs.CastError(string(v.Tag()), string(target))
		}
	default:
		return value.Value{}, errs.CastError(string(v.Tag()), string(target))
	}
}
