package record

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the single layout used for every date/time field.
const TimeFormat = time.RFC3339

// Null is the literal some older files use for an empty list.
const Null = "null"

// Encoder collects the string form of one record. The first error sticks;
// later calls are ignored.
type Encoder struct {
	schema func(string) (Field, bool)
	values map[string]string
	err    error
}

func (e *Encoder) check(name string, kind Kind) (Field, bool) {
	if e.err != nil {
		return Field{}, false
	}
	f, ok := e.schema(name)
	if !ok {
		e.err = &DataError{Kind: ErrSchemaMismatch, Field: name, Reason: "not declared"}
		return Field{}, false
	}
	if f.Kind != kind {
		e.err = &DataError{Kind: ErrSchemaMismatch, Field: name, Reason: fmt.Sprintf("declared %s, encoded as %s", f.Kind, kind)}
		return Field{}, false
	}
	return f, true
}

func (e *Encoder) set(name, value string) {
	if HasReserved(value) {
		e.err = &DataError{Kind: ErrReservedToken, Field: name}
		return
	}
	e.values[name] = value
}

// String sets a string field.
func (e *Encoder) String(name, v string) {
	if _, ok := e.check(name, String); ok {
		e.set(name, v)
	}
}

// Int sets an integer field.
func (e *Encoder) Int(name string, v int) {
	if _, ok := e.check(name, Int); ok {
		e.values[name] = strconv.Itoa(v)
	}
}

// Enum sets an enum field. The zero value "" is stored as Empty.
func (e *Encoder) Enum(name, v string) {
	f, ok := e.check(name, Enum)
	if !ok {
		return
	}
	if v == "" {
		e.values[name] = Empty
		return
	}
	if !slices.Contains(f.Tags, v) {
		e.err = &DataError{Kind: ErrSchemaMismatch, Field: name, Reason: fmt.Sprintf("unknown tag %q", v)}
		return
	}
	e.values[name] = v
}

// Time sets a date/time field. A nil or zero time is stored as Empty.
func (e *Encoder) Time(name string, v *time.Time) {
	if _, ok := e.check(name, Time); !ok {
		return
	}
	if v == nil || v.IsZero() {
		e.values[name] = Empty
		return
	}
	e.values[name] = v.UTC().Format(TimeFormat)
}

// List sets a list-of-string field as "[a, b, c]". Elements may not
// contain commas or brackets. A nil list is stored as Empty and an empty
// one as "[]", so the two survive a round trip.
func (e *Encoder) List(name string, v []string) {
	if _, ok := e.check(name, StringList); !ok {
		return
	}
	if v == nil {
		e.values[name] = Empty
		return
	}
	for _, s := range v {
		if strings.ContainsAny(s, ",[]") || strings.TrimSpace(s) != s || s == "" {
			e.err = &DataError{Kind: ErrReservedToken, Field: name, Reason: fmt.Sprintf("list element %q", s)}
			return
		}
	}
	e.set(name, "["+strings.Join(v, ", ")+"]")
}

// Decoder reads typed values out of one Mapping. The first error sticks
// and later calls return zero values.
type Decoder struct {
	schema func(string) (Field, bool)
	values map[string]string
	err    error
}

// Err returns the first decoding error.
func (d *Decoder) Err() error { return d.err }

func (d *Decoder) fail(kind error, name, reason string) {
	if d.err == nil {
		d.err = &DataError{Kind: kind, Field: name, Reason: reason}
	}
}

// raw returns the stored text, with absent reported as ok=false.
func (d *Decoder) raw(name string, kind Kind) (Field, string, bool) {
	if d.err != nil {
		return Field{}, "", false
	}
	f, ok := d.schema(name)
	if !ok {
		d.fail(ErrSchemaMismatch, name, "not declared")
		return Field{}, "", false
	}
	if f.Kind != kind {
		d.fail(ErrSchemaMismatch, name, fmt.Sprintf("declared %s, decoded as %s", f.Kind, kind))
		return Field{}, "", false
	}
	v, ok := d.values[name]
	if !ok || v == Empty {
		return f, "", false
	}
	return f, v, true
}

// String returns a string field; absent decodes to "".
func (d *Decoder) String(name string) string {
	_, v, _ := d.raw(name, String)
	return v
}

// OptString returns nil for an absent value, keeping it apart from "".
func (d *Decoder) OptString(name string) *string {
	_, v, ok := d.raw(name, String)
	if !ok {
		return nil
	}
	return &v
}

// Int returns an integer field; absent decodes to 0.
func (d *Decoder) Int(name string) int {
	_, v, ok := d.raw(name, Int)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		d.fail(ErrCorruptData, name, fmt.Sprintf("not an integer: %q", v))
		return 0
	}
	return n
}

// Enum returns an enum tag; absent decodes to "". The match is exact and
// case-sensitive.
func (d *Decoder) Enum(name string) string {
	f, v, ok := d.raw(name, Enum)
	if !ok {
		return ""
	}
	if !slices.Contains(f.Tags, v) {
		d.fail(ErrSchemaMismatch, name, fmt.Sprintf("unknown tag %q", v))
		return ""
	}
	return v
}

// Time returns a date/time field; absent decodes to nil.
func (d *Decoder) Time(name string) *time.Time {
	_, v, ok := d.raw(name, Time)
	if !ok {
		return nil
	}
	t, err := time.Parse(TimeFormat, v)
	if err != nil {
		d.fail(ErrCorruptData, name, fmt.Sprintf("not a %s time: %q", TimeFormat, v))
		return nil
	}
	t = t.UTC()
	return &t
}

// List returns a list-of-string field. "[]" decodes to an empty non-nil
// list; "null", Empty and absent decode to nil.
func (d *Decoder) List(name string) []string {
	_, v, ok := d.raw(name, StringList)
	if !ok || v == Null {
		return nil
	}
	if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		d.fail(ErrCorruptData, name, fmt.Sprintf("not a bracketed list: %q", v))
		return nil
	}
	body := strings.TrimSpace(v[1 : len(v)-1])
	if body == "" {
		return []string{}
	}
	parts := strings.Split(body, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EnumOf decodes an enum field straight into its Go type.
func EnumOf[E ~string](d *Decoder, name string) E {
	return E(d.Enum(name))
}
