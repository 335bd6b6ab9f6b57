// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// DescribeExpression renders e using the abstract variant names of
// spec.md section 3 (Literal, Binary, Logical, Member, Dot, ...), folding
// the precedence-ladder struct tree back into the conceptual shape a
// front-end's `.inspect` command prints. It performs no evaluation.
func DescribeExpression(e *Expression) string {
	return describeOr(e.Or)
}

func describeOr(n *LogicalOr) string {
	s := describeAnd(n.Ops[0])
	for _, next := range n.Ops[1:] {
		s = fmt.Sprintf("Logical(||, %s, %s)", s, describeAnd(next))
	}
	return s
}

func describeAnd(n *LogicalAnd) string {
	s := describeComparison(n.Ops[0])
	for _, next := range n.Ops[1:] {
		s = fmt.Sprintf("Logical(&&, %s, %s)", s, describeComparison(next))
	}
	return s
}

func describeComparison(n *Comparison) string {
	s := describeAdditive(n.Left)
	for _, t := range n.Tails {
		switch {
		case t.Rel != nil:
			s = fmt.Sprintf("Binary(%s, %s, %s)", t.Rel.Op, s, describeAdditive(t.Rel.Right))
		case t.Is != nil:
			s = fmt.Sprintf("IsType(%s, %s)", s, describeAdditive(t.Is.Right))
		case t.As != nil:
			s = fmt.Sprintf("Cast(%s, %s)", s, t.As.Type)
		}
	}
	return s
}

func describeAdditive(n *Additive) string {
	s := describeMul(n.Left)
	for _, t := range n.Tails {
		s = fmt.Sprintf("Binary(%s, %s, %s)", t.Op, s, describeMul(t.Right))
	}
	return s
}

func describeMul(n *Multiplicative) string {
	s := describePower(n.Left)
	for _, t := range n.Tails {
		s = fmt.Sprintf("Binary(%s, %s, %s)", t.Op, s, describePower(t.Right))
	}
	return s
}

func describePower(n *Power) string {
	s := describeUnary(n.Left)
	if n.Right != nil {
		s = fmt.Sprintf("Binary(^, %s, %s)", s, describePower(n.Right))
	}
	return s
}

func describeUnary(n *Unary) string {
	switch {
	case n.Bang != nil:
		return fmt.Sprintf("Unary(!, %s)", describeUnary(n.Bang))
	case n.Neg != nil:
		return fmt.Sprintf("Unary(-, %s)", describeUnary(n.Neg))
	default:
		return describePostfix(n.Operand)
	}
}

func describePostfix(n *Postfix) string {
	s := describePrimary(n.Primary)
	for _, suf := range n.Suffixes {
		if suf.Index != nil {
			s = fmt.Sprintf("Member(%s, %s)", s, DescribeExpression(suf.Index))
		} else {
			s = fmt.Sprintf("Dot(%s, %s)", s, suf.Dot)
		}
	}
	return s
}

func describePrimary(n *Primary) string {
	switch {
	case n.Paren != nil:
		return DescribeExpression(n.Paren)
	case n.TypeOf != nil:
		return fmt.Sprintf("TypeOf(%s)", DescribeExpression(n.TypeOf.Arg))
	case n.Call != nil:
		args := make([]string, len(n.Call.Args))
		for i, a := range n.Call.Args {
			args[i] = DescribeExpression(a)
		}
		return fmt.Sprintf("Call(%s, [%s])", n.Call.Name, strings.Join(args, ", "))
	case n.ArrayLit != nil:
		items := make([]string, len(n.ArrayLit.Items))
		for i, el := range n.ArrayLit.Items {
			if el.Spread != nil {
				items[i] = fmt.Sprintf("Spread(%s)", DescribeExpression(el.Spread))
			} else {
				items[i] = fmt.Sprintf("Single(%s)", DescribeExpression(el.Single))
			}
		}
		return fmt.Sprintf("Array([%s])", strings.Join(items, ", "))
	case n.ObjectLit != nil:
		props := make([]string, len(n.ObjectLit.Props))
		for i, p := range n.ObjectLit.Props {
			switch {
			case p.Spread != nil:
				props[i] = fmt.Sprintf("Spread(%s)", DescribeExpression(p.Spread))
			case p.Computed != nil:
				props[i] = fmt.Sprintf("KeyValue(Computed(%s), %s)", DescribeExpression(p.Computed.Key), DescribeExpression(p.Computed.Value))
			case p.KeyValue != nil:
				key := p.KeyValue.KeyIdent
				if key == "" {
					key = p.KeyValue.KeyString
				}
				props[i] = fmt.Sprintf("KeyValue(Static(%s), %s)", key, DescribeExpression(p.KeyValue.Value))
			case p.Shorthand != nil:
				props[i] = fmt.Sprintf("Shorthand(%s)", *p.Shorthand)
			}
		}
		return fmt.Sprintf("Object([%s])", strings.Join(props, ", "))
	case n.Template != nil:
		return fmt.Sprintf("Template(%s)", *n.Template)
	case n.Null != nil:
		return "Literal(null)"
	case n.True != nil:
		return "Literal(true)"
	case n.False != nil:
		return "Literal(false)"
	case n.TypeLit != nil:
		return fmt.Sprintf("TypeLiteral(%s)", *n.TypeLit)
	case n.Int != nil:
		return fmt.Sprintf("Literal(%d)", *n.Int)
	case n.Str != nil:
		return fmt.Sprintf("Literal(%s)", strconv.Quote(*n.Str))
	case n.Ident != nil:
		return fmt.Sprintf("Identifier(%s)", *n.Ident)
	}
	return "?"
}

// DescribePattern renders p using the Pattern variant names of spec.md
// section 3.
func DescribePattern(p *Pattern) string {
	switch {
	case p.Array != nil:
		return describeArrayPat(p.Array)
	case p.Object != nil:
		return describeObjectPat(p.Object)
	case p.Neg != nil:
		return fmt.Sprintf("Literal(%d)", -p.Neg.Int)
	case p.Lit != nil:
		return describePatLiteral(p.Lit)
	case p.Typed != nil:
		if p.Typed.Name == "_" {
			return fmt.Sprintf("TypedDiscard(%s)", p.Typed.Type)
		}
		return fmt.Sprintf("TypedCapture(%s, %s)", p.Typed.Name, p.Typed.Type)
	case p.Name != nil:
		if *p.Name == "_" {
			return "Discard"
		}
		return fmt.Sprintf("Capture(%s)", *p.Name)
	}
	return "?"
}

func describePatLiteral(l *PatLiteral) string {
	switch {
	case l.Null != nil:
		return "Literal(null)"
	case l.True != nil:
		return "Literal(true)"
	case l.Fals != nil:
		return "Literal(false)"
	case l.Int != nil:
		return fmt.Sprintf("Literal(%d)", *l.Int)
	case l.Str != nil:
		return fmt.Sprintf("Literal(%s)", strconv.Quote(*l.Str))
	}
	return "?"
}

func describeArrayPat(a *ArrayPat) string {
	var items []string
	rest := "Exact"
	for _, el := range a.Elements {
		switch {
		case el.RestName != nil:
			rest = fmt.Sprintf("Collect(%s)", *el.RestName)
		case el.RestOpen != nil:
			rest = "Discard"
		default:
			items = append(items, fmt.Sprintf("Single(%s)", DescribePattern(el.Item)))
		}
	}
	return fmt.Sprintf("Array([%s], %s)", strings.Join(items, ", "), rest)
}

func describeObjectPat(o *ObjectPat) string {
	var items []string
	rest := "Exact"
	for _, el := range o.Elements {
		switch {
		case el.RestName != nil:
			rest = fmt.Sprintf("Collect(%s)", *el.RestName)
		case el.RestOpen != nil:
			rest = "Discard"
		case el.Keyed != nil:
			key := el.Keyed.Static
			if el.Keyed.Computed != nil {
				key = fmt.Sprintf("Computed(%s)", DescribeExpression(el.Keyed.Computed))
			} else {
				key = fmt.Sprintf("Static(%s)", key)
			}
			items = append(items, fmt.Sprintf("Property(%s, %s)", key, DescribePattern(el.Keyed.Value)))
		case el.Single != nil:
			if el.Single.Type != nil {
				items = append(items, fmt.Sprintf("Single(TypedCapture(%s, %s))", el.Single.Name, *el.Single.Type))
			} else {
				items = append(items, fmt.Sprintf("Single(Capture(%s))", el.Single.Name))
			}
		}
	}
	return fmt.Sprintf("Object([%s], %s)", strings.Join(items, ", "), rest)
}
