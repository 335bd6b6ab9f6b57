// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package shell

import (
	"strings"

	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/eval"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/match"
)

// Eval evaluates source line by line, per spec.md section 6: a line
// starting with `.` is a bag command (a flat dispatch, spec.md section
// 4.6 — no multi-step states), anything else is a `;`-separated sequence
// of statements parsed by the core grammar. Each statement or command
// contributes one or more Output values, in order; a failing statement
// never mutates the session environment or a bag, but evaluation of the
// remaining lines/statements continues.
func (s *Shell) Eval(source string) []Output {
	var out []Output
	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			out = append(out, s.dispatch(line[1:])...)
			continue
		}
		prog, err := lang.ParseProgram(line)
		if err != nil {
			s.logger.Debug("parse failed", "line", line, "error", err)
			out = append(out, errorOutput(err))
			continue
		}
		for _, stmt := range prog.Stmts {
			out = append(out, s.evalStatement(stmt))
		}
	}
	return out
}

// dispatch tokenizes a dot-command's body (with the leading `.` already
// stripped) and hands the argument tail to the registered handler.
func (s *Shell) dispatch(body string) []Output {
	tokens, err := lang.Tokenize(body)
	if err != nil {
		return []Output{errorOutput(err)}
	}
	if len(tokens) == 0 {
		return []Output{errorOutput(errs.ParseError(0, "command", "empty command"))}
	}
	name := tokens[0].Value
	handler, ok := s.registry.Get(name)
	if !ok {
		return []Output{errorOutput(errs.ParseError(tokens[0].Offset, "command", "unknown command ."+name))}
	}
	s.logger.Debug("dispatch command", "name", name)
	return handler(s, tokens[1:])
}

// evalStatement evaluates one parsed Statement against the current
// session environment, per spec.md section 6's three statement forms.
func (s *Shell) evalStatement(stmt *lang.Statement) Output {
	switch {
	case stmt.Let != nil:
		return s.evalLet(stmt.Let)
	case stmt.Assign != nil:
		return s.evalAssign(stmt.Assign)
	case stmt.Expr != nil:
		v, err := eval.Eval(stmt.Expr, s.env)
		if err != nil {
			return errorOutput(err)
		}
		return valueOutput(v)
	default:
		return errorOutput(errs.ParseError(0, "statement", "empty statement"))
	}
}

// evalLet matches and, on success, folds the new bindings into the
// session environment so later statements see them.
func (s *Shell) evalLet(stmt *lang.LetStmt) Output {
	v, err := eval.Eval(stmt.Expr, s.env)
	if err != nil {
		return errorOutput(err)
	}
	bound, err := match.Match(stmt.Pat, v, s.env)
	if err != nil {
		return errorOutput(err)
	}
	bindings := bound.Since(s.env)
	s.env = bound
	return matchOutput(bindings)
}

// evalAssign matches and reports the bindings without committing them to
// the session environment ("assignment without binding" in spec.md
// section 6).
func (s *Shell) evalAssign(stmt *lang.AssignStmt) Output {
	v, err := eval.Eval(stmt.Expr, s.env)
	if err != nil {
		return errorOutput(err)
	}
	bound, err := match.Match(stmt.Pat, v, s.env)
	if err != nil {
		return errorOutput(err)
	}
	return matchOutput(bound.Since(s.env))
}
