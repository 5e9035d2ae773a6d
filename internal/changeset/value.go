// Package changeset compares entity snapshots field by field and reports
// the differences in a display-friendly form, so editors can show "what
// will change" before committing a mutation and callers can build minimal
// partial-update payloads.
package changeset

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the closed set of comparable value kinds.
type Kind int

const (
	// KindAbsent marks a missing value. Nil, absent keys, and empty
	// strings all normalize to it and compare equal to each other.
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindBool
	KindTime
	KindList
	KindRecord
)

// Value is a tagged comparable value. Equality is defined on normalized
// values: strings are trimmed, times reduced to their UTC calendar day,
// lists sorted, and records compared by exact key set.
type Value struct {
	kind    Kind
	text    string
	number  float64
	boolean bool
	when    time.Time
	list    []Value
	record  map[string]Value
}

// Absent returns the missing-value marker.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// Text wraps a string value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number wraps a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

// Int wraps an integer value.
func Int(n int) Value {
	return Number(float64(n))
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Date wraps a point in time. Comparison ignores time of day.
func Date(t time.Time) Value {
	return Value{kind: KindTime, when: t}
}

// List wraps an ordered collection. Comparison ignores order.
func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, list: list}
}

// Strings wraps a string slice as a list value.
func Strings(items []string) Value {
	list := make([]Value, len(items))
	for i, item := range items {
		list[i] = Text(item)
	}
	return Value{kind: KindList, list: list}
}

// Record wraps a plain key-value object.
func Record(fields map[string]Value) Value {
	record := make(map[string]Value, len(fields))
	for key, value := range fields {
		record[key] = value
	}
	return Value{kind: KindRecord, record: record}
}

// Kind returns the value's kind tag.
func (v Value) Kind() Kind {
	return v.kind
}

// AsText returns the trimmed string value. The bool reports whether the
// normalized value is text.
func (v Value) AsText() (string, bool) {
	n := v.normalize()
	return n.text, n.kind == KindText
}

// AsNumber returns the numeric value.
func (v Value) AsNumber() (float64, bool) {
	return v.number, v.kind == KindNumber
}

// AsBool returns the boolean value.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsTime returns the time value reduced to its UTC calendar day.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return calendarDay(v.when), true
}

// AsStrings returns list elements coerced to their text form.
func (v Value) AsStrings() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]string, len(v.list))
	for i, item := range v.list {
		text, _ := item.AsText()
		out[i] = text
	}
	return out, true
}

// Equal reports whether two values are equal under normalization.
func Equal(a, b Value) bool {
	return a.normalize().equalNormalized(b.normalize())
}

func calendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// normalize applies the comparison rules recursively.
func (v Value) normalize() Value {
	switch v.kind {
	case KindText:
		trimmed := strings.TrimSpace(v.text)
		if trimmed == "" {
			return Absent()
		}
		return Value{kind: KindText, text: trimmed}
	case KindTime:
		return Value{kind: KindTime, when: calendarDay(v.when)}
	case KindList:
		items := make([]Value, len(v.list))
		for i := range v.list {
			items[i] = v.list[i].normalize()
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].sortKey() < items[j].sortKey()
		})
		return Value{kind: KindList, list: items}
	case KindRecord:
		fields := make(map[string]Value, len(v.record))
		for key, item := range v.record {
			fields[key] = item.normalize()
		}
		return Value{kind: KindRecord, record: fields}
	default:
		return v
	}
}

func (v Value) equalNormalized(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAbsent:
		return true
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.number == o.number
	case KindBool:
		return v.boolean == o.boolean
	case KindTime:
		return v.when.Equal(o.when)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].equalNormalized(o.list[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(v.record) != len(o.record) {
			return false
		}
		for key, item := range v.record {
			other, ok := o.record[key]
			if !ok || !item.equalNormalized(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// sortKey returns a canonical string used to order list elements before
// element-wise comparison.
func (v Value) sortKey() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindTime:
		return v.when.Format(time.DateOnly)
	case KindList:
		keys := make([]string, len(v.list))
		for i, item := range v.list {
			keys[i] = item.sortKey()
		}
		return strings.Join(keys, ",")
	case KindRecord:
		keys := make([]string, 0, len(v.record))
		for key := range v.record {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, key := range keys {
			pairs[i] = key + "=" + v.record[key].sortKey()
		}
		return strings.Join(pairs, ",")
	default:
		return ""
	}
}
