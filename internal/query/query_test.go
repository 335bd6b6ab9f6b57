// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

package query_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/laszlokorte/damasc/internal/bag"
	"github.com/laszlokorte/damasc/internal/lang"
	"github.com/laszlokorte/damasc/internal/query"
	"github.com/laszlokorte/damasc/internal/value"
)

func pattern(src string) *lang.Pattern {
	p, err := lang.ParsePattern(src)
	Expect(err).NotTo(HaveOccurred())
	return p
}

func expr(src string) *lang.Expression {
	e, err := lang.ParseExpression(src)
	Expect(err).NotTo(HaveOccurred())
	return e
}

func drain(q *query.Query, b *bag.Bag) ([]value.Value, error) {
	var rows []value.Value
	for v, err := range q.Run(b) {
		if err != nil {
			return rows, err
		}
		rows = append(rows, v)
	}
	return rows, nil
}

var _ = Describe("Query", func() {
	var b *bag.Bag

	BeforeEach(func() {
		b = bag.New("init", nil)
	})

	Describe("construction", func() {
		It("rejects an empty pattern list", func() {
			_, err := query.New(nil, nil, nil, nil, query.Distinct)
			Expect(err).To(HaveOccurred())
		})

		It("rejects more than MaxPatterns patterns", func() {
			pats := make([]*lang.Pattern, query.MaxPatterns+1)
			for i := range pats {
				pats[i] = pattern("_")
			}
			_, err := query.New(pats, nil, nil, nil, query.Distinct)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a negative limit", func() {
			n := -1
			_, err := query.New([]*lang.Pattern{pattern("_")}, nil, nil, &n, query.Distinct)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("distinct mode over two positions (scenario 5)", func() {
		BeforeEach(func() {
			_, err := b.Insert([]value.Value{value.Int(1), value.Int(0)})
			Expect(err).NotTo(HaveOccurred())
		})

		It("yields the two distinct-index tuples and nothing else", func() {
			q, err := query.New([]*lang.Pattern{pattern("a"), pattern("b")}, nil, nil, nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			formatted := []string{value.Format(rows[0]), value.Format(rows[1])}
			Expect(formatted).To(ConsistOf("[1, 0, ]", "[0, 1, ]"))
		})
	})

	Describe("with-repetition mode over two positions (scenario 5)", func() {
		BeforeEach(func() {
			_, err := b.Insert([]value.Value{value.Int(1), value.Int(0)})
			Expect(err).NotTo(HaveOccurred())
		})

		It("yields all four tuples including same-index repeats", func() {
			q, err := query.New([]*lang.Pattern{pattern("a"), pattern("b")}, nil, nil, nil, query.WithRepetition)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(4))
			formatted := make([]string, len(rows))
			for i, r := range rows {
				formatted[i] = value.Format(r)
			}
			Expect(formatted).To(ConsistOf("[1, 0, ]", "[0, 1, ]", "[1, 1, ]", "[0, 0, ]"))
		})
	})

	Describe("predicate filtering", func() {
		BeforeEach(func() {
			_, err := b.Insert([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps only tuples satisfying the where clause", func() {
			q, err := query.New([]*lang.Pattern{pattern("x")}, nil, expr("x > 1"), nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})

		It("aborts the whole query on a non-skippable predicate error", func() {
			q, err := query.New([]*lang.Pattern{pattern("x")}, nil, expr("nope > 0"), nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())
			_, err = drain(q, b)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("projection", func() {
		BeforeEach(func() {
			_, err := b.Insert([]value.Value{
				value.Object([]value.KV{{Key: "x", Val: value.Int(1)}}),
				value.Object([]value.KV{{Key: "y", Val: value.Int(2)}}),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("defaults to an array of the chosen tuple when no into clause is given", func() {
			q, err := query.New([]*lang.Pattern{pattern("t")}, nil, nil, nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Tag()).To(Equal(value.TagArray))
		})

		It("skips tuples where the projection hits a skippable error", func() {
			q, err := query.New([]*lang.Pattern{pattern("t")}, expr("t.x"), nil, nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Int()).To(Equal(int64(1)))
		})
	})

	Describe("limit", func() {
		BeforeEach(func() {
			_, err := b.Insert([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
			Expect(err).NotTo(HaveOccurred())
		})

		It("stops producing rows once the limit is reached", func() {
			limit := 2
			q, err := query.New([]*lang.Pattern{pattern("x")}, nil, nil, &limit, query.Distinct)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})
	})

	Describe("non-NoMatch match error", func() {
		It("aborts the whole query rather than yielding a silently truncated stream", func() {
			_, err := b.Insert([]value.Value{value.Object([]value.KV{{Key: "a", Val: value.Int(1)}})})
			Expect(err).NotTo(HaveOccurred())
			q, err := query.New([]*lang.Pattern{pattern("{[x]: v}")}, nil, nil, nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).To(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("re-affirming join pattern", func() {
		It("only joins entries where the repeated capture agrees", func() {
			_, err := b.Insert([]value.Value{value.Int(1), value.Int(1), value.Int(2)})
			Expect(err).NotTo(HaveOccurred())
			q, err := query.New([]*lang.Pattern{pattern("x"), pattern("x")}, nil, nil, nil, query.WithRepetition)
			Expect(err).NotTo(HaveOccurred())
			rows, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range rows {
				items := r.Items()
				Expect(value.Equal(items[0], items[1])).To(BeTrue())
			}
		})
	})

	Describe("determinism (testable property: query determinism)", func() {
		It("produces identical streams across two successive runs", func() {
			_, err := b.Insert([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
			Expect(err).NotTo(HaveOccurred())
			q, err := query.New([]*lang.Pattern{pattern("x")}, nil, expr("x > 1"), nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())

			first, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())
			second, err := drain(q, b)
			Expect(err).NotTo(HaveOccurred())

			Expect(len(first)).To(Equal(len(second)))
			for i := range first {
				Expect(value.Equal(first[i], second[i])).To(BeTrue())
			}
		})
	})

	Describe("early termination", func() {
		It("stops enumerating once the consumer breaks", func() {
			_, err := b.Insert([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
			Expect(err).NotTo(HaveOccurred())
			q, err := query.New([]*lang.Pattern{pattern("x")}, nil, nil, nil, query.Distinct)
			Expect(err).NotTo(HaveOccurred())

			count := 0
			for range q.Run(b) {
				count++
				if count == 1 {
					break
				}
			}
			Expect(count).To(Equal(1))
		})
	})
})
