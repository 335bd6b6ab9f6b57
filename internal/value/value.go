// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Damasc Contributors

// Package value implements the Damasc Value tagged union: the immutable
// JSON-like tree that expressions evaluate to and patterns match against.
package value

import (
	"fmt"
	"strings"
)

// Tag identifies a Value variant. It doubles as the runtime representation
// of the Damasc `Type` value.
type Tag string

const (
	TagNull    Tag = "Null"
	TagBoolean Tag = "Boolean"
	TagInteger Tag = "Integer"
	TagString  Tag = "String"
	TagArray   Tag = "Array"
	TagObject  Tag = "Object"
	TagType    Tag = "Type"
)

// ValidTag reports whether s names one of the seven type tags.
func ValidTag(s string) bool {
	switch Tag(s) {
	case TagNull, TagBoolean, TagInteger, TagString, TagArray, TagObject, TagType:
		return true
	}
	return false
}

// entry is one key/value pair of an Object, kept in insertion order.
type entry struct {
	key string
	val Value
}

// Value is an immutable JSON-like value. The zero Value has an empty Tag
// and is not Null; use Null() for the null value. Values are never
// mutated after construction; Array/Object builders copy on write.
type Value struct {
	tag   Tag
	b     bool
	i     int64
	s     string
	arr   []Value
	obj   []entry
	index map[string]int // obj key -> index, nil for non-Object
	typ   Tag             // payload for TagType
}

func Null() Value               { return Value{tag: TagNull} }
func Bool(b bool) Value         { return Value{tag: TagBoolean, b: b} }
func Int(i int64) Value         { return Value{tag: TagInteger, i: i} }
func Str(s string) Value        { return Value{tag: TagString, s: s} }
func TypeVal(t Tag) Value       { return Value{tag: TagType, typ: t} }

// Array builds an Array value, copying items so later mutation of the
// caller's slice does not affect the Value.
func Array(items []Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{tag: TagArray, arr: cp}
}

// Object builds an Object value from ordered key/value pairs. Later pairs
// with a key already seen override the earlier entry's value, keeping the
// earlier entry's position (first-appearance order, last-wins value).
func Object(pairs []KV) Value {
	idx := make(map[string]int, len(pairs))
	var entries []entry
	for _, p := range pairs {
		if i, ok := idx[p.Key]; ok {
			entries[i].val = p.Val
			continue
		}
		idx[p.Key] = len(entries)
		entries = append(entries, entry{key: p.Key, val: p.Val})
	}
	return Value{tag: TagObject, obj: entries, index: idx}
}

// KV is one key/value pair passed to Object.
type KV struct {
	Key string
	Val Value
}

func (v Value) Tag() Tag    { return v.tag }
func (v Value) IsNull() bool    { return v.tag == TagNull }
func (v Value) Bool() bool      { return v.b }
func (v Value) Int() int64      { return v.i }
func (v Value) Str() string     { return v.s }
func (v Value) TypeTag() Tag    { return v.typ }

// Items returns a copy of an Array's elements.
func (v Value) Items() []Value {
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp
}

// Len returns the number of elements of an Array, the number of keys of
// an Object, or the number of codepoints of a String. It panics if called
// on any other variant; callers must check
// Tag() first (mirrors the teacher's defensive getters that assume a
// validated shape).
func (v Value) Len() int {
	switch v.tag {
	case TagArray:
		return len(v.arr)
	case TagObject:
		return len(v.obj)
	case TagString:
		return len([]rune(v.s))
	}
	panic(fmt.Sprintf("value: Len called on %s", v.tag))
}

// Keys returns an Object's keys in insertion order.
func (v Value) Keys() []string {
	ks := make([]string, len(v.obj))
	for i, e := range v.obj {
		ks[i] = e.key
	}
	return ks
}

// Entries returns an Object's key/value pairs in insertion order.
func (v Value) Entries() []KV {
	out := make([]KV, len(v.obj))
	for i, e := range v.obj {
		out[i] = KV{Key: e.key, Val: e.val}
	}
	return out
}

// Get looks up a key in an Object.
func (v Value) Get(key string) (Value, bool) {
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.obj[i].val, true
}

// Has reports whether an Object contains key.
func (v Value) Has(key string) bool {
	_, ok := v.index[key]
	return ok
}

// At returns the element of an Array at i, resolving negative indices as
// len+i per spec.
func (v Value) At(i int64) (Value, bool) {
	n := int64(len(v.arr))
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Value{}, false
	}
	return v.arr[i], true
}

// Equal implements the structural equality of spec.md section 3: different
// variants are never equal; Object equality ignores order.
func Equal(a, b Value) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TagNull:
		return true
	case TagBoolean:
		return a.b == b.b
	case TagInteger:
		return a.i == b.i
	case TagString:
		return a.s == b.s
	case TagType:
		return a.typ == b.typ
	case TagArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case TagObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for _, e := range a.obj {
			bv, ok := b.Get(e.key)
			if !ok || !Equal(e.val, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// isIdentLike reports whether s can be printed unquoted as an object key.
func isIdentLike(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func escapeString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Format renders v in the canonical text format of spec.md section 6:
// trailing comma-space inside arrays and objects, one space after commas,
// unquoted identifier-like object keys. parse(Format(v)) must round-trip.
func Format(v Value) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v Value) {
	switch v.tag {
	case TagNull:
		b.WriteString("null")
	case TagBoolean:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case TagInteger:
		fmt.Fprintf(b, "%d", v.i)
	case TagString:
		b.WriteString(escapeString(v.s))
	case TagType:
		b.WriteString(string(v.typ))
	case TagArray:
		b.WriteByte('[')
		for _, e := range v.arr {
			format(b, e)
			b.WriteString(", ")
		}
		b.WriteByte(']')
	case TagObject:
		b.WriteByte('{')
		for _, e := range v.obj {
			if isIdentLike(e.key) {
				b.WriteString(e.key)
			} else {
				b.WriteString(escapeString(e.key))
			}
			b.WriteString(": ")
			format(b, e.val)
			b.WriteString(", ")
		}
		b.WriteByte('}')
	}
}
