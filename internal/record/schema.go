// Package record converts typed records to flat string mappings and back,
// driven by an explicit per-type schema.
package record

import (
	"errors"
	"fmt"
)

// Kind is the semantic type of a schema field.
type Kind int

const (
	String Kind = iota + 1
	Int
	Enum
	Time
	StringList
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Enum:
		return "enum"
	case Time:
		return "time"
	case StringList:
		return "list"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k >= String && k <= StringList
}

// Field declares one attribute of a record type.
type Field struct {
	Name string
	Kind Kind
	Tags []string // allowed values, Enum fields only
}

// Schema describes how records of type T map to and from a Mapping.
type Schema[T any] struct {
	Name         string
	Fields       []Field
	Key          string // identity attribute, must be a String field
	SecondaryKey string // optional unique attribute, must be a String field

	Encode func(T, *Encoder)
	Decode func(*Decoder) T

	index map[string]int
}

// NewSchema validates s and prepares it for use.
func NewSchema[T any](s Schema[T]) (*Schema[T], error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: schema has no name", ErrSchemaMismatch)
	}
	if s.Encode == nil || s.Decode == nil {
		return nil, fmt.Errorf("%w: schema %s: encode and decode are required", ErrSchemaMismatch, s.Name)
	}

	s.index = make(map[string]int, len(s.Fields))
	var errs []error
	for i, f := range s.Fields {
		switch {
		case f.Name == "":
			errs = append(errs, fmt.Errorf("field %d has no name", i))
		case HasReserved(f.Name):
			errs = append(errs, fmt.Errorf("field %q: %w", f.Name, ErrReservedToken))
		case !f.Kind.valid():
			errs = append(errs, fmt.Errorf("field %q: unsupported type %s", f.Name, f.Kind))
		case f.Kind == Enum && len(f.Tags) == 0:
			errs = append(errs, fmt.Errorf("field %q: enum without tags", f.Name))
		}
		if _, dup := s.index[f.Name]; dup {
			errs = append(errs, fmt.Errorf("field %q declared twice", f.Name))
		}
		s.index[f.Name] = i
	}

	if s.Key == "" {
		errs = append(errs, errors.New("no identity key"))
	} else if f, ok := s.field(s.Key); !ok || f.Kind != String {
		errs = append(errs, fmt.Errorf("identity key %q is not a string field", s.Key))
	}
	if s.SecondaryKey != "" {
		if f, ok := s.field(s.SecondaryKey); !ok || f.Kind != String {
			errs = append(errs, fmt.Errorf("secondary key %q is not a string field", s.SecondaryKey))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: schema %s: %w", ErrSchemaMismatch, s.Name, err)
	}
	return &s, nil
}

// MustSchema is NewSchema for package-level declarations. A broken schema
// stops the program at start-up instead of failing record by record.
func MustSchema[T any](s Schema[T]) *Schema[T] {
	out, err := NewSchema(s)
	if err != nil {
		panic(err)
	}
	return out
}

func (s *Schema[T]) field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Columns returns the field names in declaration order.
func (s *Schema[T]) Columns() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Name
	}
	return cols
}

// ToMapping encodes v. Every declared field is present in the result; fields
// the encoder did not set hold Empty.
func (s *Schema[T]) ToMapping(v T) (Mapping, error) {
	enc := &Encoder{schema: s.fieldLookup(), values: make(map[string]string, len(s.Fields))}
	s.Encode(v, enc)
	if enc.err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.Name, enc.err)
	}

	m := make(Mapping, len(s.Fields))
	for i, f := range s.Fields {
		val, ok := enc.values[f.Name]
		if !ok {
			val = Empty
		}
		m[i] = Pair{Name: f.Name, Value: val}
	}
	return m, nil
}

// FromMapping decodes m into a T. Fields missing from m decode as absent.
// A name the schema does not declare means the file was written by
// something else and fails with ErrCorruptData.
func (s *Schema[T]) FromMapping(m Mapping) (T, error) {
	var zero T
	values := make(map[string]string, len(m))
	for _, p := range m {
		if _, ok := s.index[p.Name]; !ok {
			return zero, &DataError{Kind: ErrCorruptData, Field: p.Name, Reason: "not declared by " + s.Name}
		}
		values[p.Name] = p.Value
	}

	dec := &Decoder{schema: s.fieldLookup(), values: values}
	v := s.Decode(dec)
	if dec.err != nil {
		return zero, dec.err
	}
	return v, nil
}

// Keys returns the identity and secondary key values of m.
// Absent values are returned as "".
func (s *Schema[T]) Keys(m Mapping) (id, secondary string) {
	id, _ = m.Get(s.Key)
	if id == Empty {
		id = ""
	}
	if s.SecondaryKey != "" {
		secondary, _ = m.Get(s.SecondaryKey)
		if secondary == Empty {
			secondary = ""
		}
	}
	return id, secondary
}

func (s *Schema[T]) fieldLookup() func(string) (Field, bool) {
	return s.field
}
