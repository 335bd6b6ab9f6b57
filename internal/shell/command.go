// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package shell

import (
	"fmt"

	"github.com/laszlokorte/damasc/internal/bag"
	"github.com/laszlokorte/damasc/internal/errs"
	"github.com/laszlokorte/damasc/internal/eval"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/query"
	"github.com/laszlokorte/damasc/internal/value"
	"github.com/laszlokorte/damasc/pkg/errutil"
)

// Handler executes one dot-command's argument tail (already split off
// the command name) against the shell.
type Handler func(s *Shell, args []lang.Token) []Output

// Registry is a name to Handler map, the flat dispatch spec.md section
// 4.6 calls for, mirroring internal/command/registry.go's shape in the
// teacher repository (minus the capability/access-control layer, which
// is out of scope here).
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds or replaces the handler for name.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Get looks up the handler for name.
func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

func defaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("bag", cmdBag)
	r.Register("insert", cmdInsert)
	r.Register("query", cmdQuery)
	r.Register("queryx", cmdQueryX)
	r.Register("delete", cmdDelete)
	r.Register("pop", cmdPop)
	r.Register("dump", cmdDump)
	r.Register("load", cmdLoad)
	r.Register("inspect", cmdInspect)
	r.Register("pattern", cmdPattern)
	r.Register("clear", cmdClear)
	return r
}

// cmdBag implements `.bag`, `.bag NAME` and `.bag NAME as PATTERN [where
// EXPR] [limit N]`.
func cmdBag(s *Shell, args []lang.Token) []Output {
	if len(args) == 0 {
		return []Output{bagStatusOutput(s.store.Current())}
	}
	name := args[0].Value
	_, clauses := carveClauses(args[1:], "as", "where", "limit")

	asTokens, hasAs := clauses["as"]
	if !hasAs {
		if err := s.store.Switch(name); err != nil {
			return []Output{errorOutput(err)}
		}
		return []Output{okOutput()}
	}

	pat, err := lang.ParsePattern(joinTokens(asTokens))
	if err != nil {
		return []Output{errorOutput(err)}
	}
	var predicate *lang.Expression
	if whereTokens, ok := clauses["where"]; ok {
		if predicate, err = lang.ParseExpression(joinTokens(whereTokens)); err != nil {
			return []Output{errorOutput(err)}
		}
	}
	var limit *int
	if limitTokens, ok := clauses["limit"]; ok {
		n, err := parseLimit(limitTokens)
		if err != nil {
			return []Output{errorOutput(err)}
		}
		limit = &n
	}
	schema, err := bag.NewSchema(pat, predicate, limit)
	if err != nil {
		return []Output{errorOutput(err)}
	}
	if _, err := s.store.Create(name, schema); err != nil {
		return []Output{errorOutput(err)}
	}
	return []Output{okOutput()}
}

// cmdInsert implements `.insert EXPR[;EXPR…]`.
func cmdInsert(s *Shell, args []lang.Token) []Output {
	var values []value.Value
	for _, group := range splitTop(args, ";") {
		if len(group) == 0 {
			continue
		}
		expr, err := lang.ParseExpression(joinTokens(group))
		if err != nil {
			return []Output{errorOutput(err)}
		}
		v, err := eval.Eval(expr, s.env)
		if err != nil {
			return []Output{errorOutput(err)}
		}
		values = append(values, v)
	}
	n, err := s.store.CurrentBag().Insert(values)
	if err != nil {
		return []Output{bagStatusOutput("NO")}
	}
	name := s.store.Current()
	if s.metrics != nil {
		s.metrics.BagInserts.WithLabelValues(name).Add(float64(n))
		s.metrics.BagEntries.WithLabelValues(name).Set(float64(s.store.CurrentBag().Size()))
	}
	return []Output{bagStatusOutput(fmt.Sprintf("INSERTED %d", n))}
}

// cmdQuery implements `.query` in distinct mode.
func cmdQuery(s *Shell, args []lang.Token) []Output {
	return cmdQueryMode(s, args, query.Distinct)
}

// cmdQueryX implements `.queryx`, identical to `.query` but with
// repetition allowed across pattern positions.
func cmdQueryX(s *Shell, args []lang.Token) []Output {
	return cmdQueryMode(s, args, query.WithRepetition)
}

func cmdQueryMode(s *Shell, args []lang.Token, mode query.Mode) []Output {
	head, clauses := carveClauses(args, "into", "where", "limit")

	var patterns []*lang.Pattern
	if len(head) == 0 {
		defaultPat, err := lang.ParsePattern("_")
		if err != nil {
			return []Output{errorOutput(err)}
		}
		patterns = []*lang.Pattern{defaultPat}
	} else {
		for _, group := range splitTop(head, ";") {
			if len(group) == 0 {
				continue
			}
			p, err := lang.ParsePattern(joinTokens(group))
			if err != nil {
				return []Output{errorOutput(err)}
			}
			patterns = append(patterns, p)
		}
	}

	var projection *lang.Expression
	if t, ok := clauses["into"]; ok {
		var err error
		if projection, err = lang.ParseExpression(joinTokens(t)); err != nil {
			return []Output{errorOutput(err)}
		}
	}
	var predicate *lang.Expression
	if t, ok := clauses["where"]; ok {
		var err error
		if predicate, err = lang.ParseExpression(joinTokens(t)); err != nil {
			return []Output{errorOutput(err)}
		}
	}
	var limit *int
	if t, ok := clauses["limit"]; ok {
		n, err := parseLimit(t)
		if err != nil {
			return []Output{errorOutput(err)}
		}
		limit = &n
	}

	q, err := query.New(patterns, projection, predicate, limit, mode)
	if err != nil {
		return []Output{errorOutput(err)}
	}

	name := s.store.Current()
	var out []Output
	for v, rowErr := range q.Run(s.store.CurrentBag()) {
		if rowErr != nil {
			if s.metrics != nil {
				s.metrics.QueryErrors.WithLabelValues(name).Inc()
			}
			out = append(out, errorOutput(rowErr))
			break
		}
		if s.metrics != nil {
			s.metrics.QueryRows.WithLabelValues(name).Inc()
		}
		out = append(out, queryRowOutput(v))
	}
	return out
}

// cmdDelete implements `.delete PATTERN [where EXPR] [limit N]`.
func cmdDelete(s *Shell, args []lang.Token) []Output {
	head, clauses := carveClauses(args, "where", "limit")
	pat, err := lang.ParsePattern(joinTokens(head))
	if err != nil {
		return []Output{errorOutput(err)}
	}
	var predicate *lang.Expression
	if t, ok := clauses["where"]; ok {
		if predicate, err = lang.ParseExpression(joinTokens(t)); err != nil {
			return []Output{errorOutput(err)}
		}
	}
	var limit *int
	if t, ok := clauses["limit"]; ok {
		n, err := parseLimit(t)
		if err != nil {
			return []Output{errorOutput(err)}
		}
		limit = &n
	}
	n, err := s.store.CurrentBag().Delete(pat, predicate, limit)
	if err != nil {
		return []Output{errorOutput(err)}
	}
	name := s.store.Current()
	if s.metrics != nil {
		s.metrics.BagDeletes.WithLabelValues(name).Add(float64(n))
		s.metrics.BagEntries.WithLabelValues(name).Set(float64(s.store.CurrentBag().Size()))
	}
	return []Output{bagStatusOutput(fmt.Sprintf("DELETED %d", n))}
}

// cmdPop implements `.pop EXPR`.
func cmdPop(s *Shell, args []lang.Token) []Output {
	expr, err := lang.ParseExpression(joinTokens(args))
	if err != nil {
		return []Output{errorOutput(err)}
	}
	v, err := eval.Eval(expr, s.env)
	if err != nil {
		return []Output{errorOutput(err)}
	}
	n := s.store.CurrentBag().Pop(v)
	name := s.store.Current()
	if s.metrics != nil {
		s.metrics.BagPops.WithLabelValues(name).Add(float64(n))
		s.metrics.BagEntries.WithLabelValues(name).Set(float64(s.store.CurrentBag().Size()))
	}
	return []Output{bagStatusOutput(fmt.Sprintf("POPPED %d", n))}
}

// cmdDump implements `.dump NAME`.
func cmdDump(s *Shell, args []lang.Token) []Output {
	if len(args) != 1 {
		return []Output{errorOutput(errs.BagError("dump requires exactly one file name"))}
	}
	if err := bag.Dump(s.store.CurrentBag(), s.dir, args[0].Value); err != nil {
		s.logger.Warn("dump failed", "name", args[0].Value, "error", err)
		return []Output{errorOutput(err)}
	}
	return []Output{okOutput()}
}

// cmdLoad implements `.load NAME`.
func cmdLoad(s *Shell, args []lang.Token) []Output {
	if len(args) != 1 {
		return []Output{errorOutput(errs.BagError("load requires exactly one file name"))}
	}
	n, err := bag.Load(s.store.CurrentBag(), s.dir, args[0].Value)
	if err != nil {
		errutil.LogError(s.logger, "load failed", err)
		return []Output{errorOutput(err)}
	}
	name := s.store.Current()
	if s.metrics != nil {
		s.metrics.BagEntries.WithLabelValues(name).Set(float64(s.store.CurrentBag().Size()))
	}
	return []Output{bagStatusOutput(fmt.Sprintf("LOADED %d", n))}
}

// cmdInspect implements `.inspect EXPR`, pretty-printing its AST. It
// reuses the BagStatus output slot as a generic text carrier, since
// spec.md section 6's Output union has no dedicated "pretty text" variant.
func cmdInspect(s *Shell, args []lang.Token) []Output {
	expr, err := lang.ParseExpression(joinTokens(args))
	if err != nil {
		return []Output{errorOutput(err)}
	}
	return []Output{bagStatusOutput(lang.DescribeExpression(expr))}
}

// cmdPattern implements `.pattern PATTERN`.
func cmdPattern(s *Shell, args []lang.Token) []Output {
	pat, err := lang.ParsePattern(joinTokens(args))
	if err != nil {
		return []Output{errorOutput(err)}
	}
	return []Output{bagStatusOutput(lang.DescribePattern(pat))}
}

// cmdClear implements `.clear`. Clearing a display buffer is a front-end
// concern (spec.md section 6); the core has nothing to do but acknowledge.
func cmdClear(s *Shell, args []lang.Token) []Output {
	return []Output{okOutput()}
}
