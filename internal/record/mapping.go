package record

import "strings"

// Reserved characters. They sit in the C0 control range, which never
// appears in names, notes or dates typed by hospital staff.
const (
	// FieldSeparator separates names and values inside one record.
	FieldSeparator = "\x1f"

	// RecordSeparator terminates a record.
	RecordSeparator = "\x1e"

	// Empty encodes an absent value. It is distinct from "".
	Empty = "\x18"
)

const reserved = FieldSeparator + RecordSeparator + Empty

// Pair is one name/value entry of a Mapping.
type Pair struct {
	Name  string
	Value string
}

// Mapping is the flat string form of one record. Order follows the schema
// that produced it, which keeps files stable across saves.
type Mapping []Pair

// Get returns the value stored under name.
func (m Mapping) Get(name string) (string, bool) {
	for _, p := range m {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Names returns the field names in order.
func (m Mapping) Names() []string {
	names := make([]string, len(m))
	for i, p := range m {
		names[i] = p.Name
	}
	return names
}

// HasReserved reports whether s contains a reserved character.
func HasReserved(s string) bool {
	return strings.ContainsAny(s, reserved)
}
