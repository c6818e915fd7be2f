package database

import (
	"slices"

	"github.com/rcliao/hms/internal/record"
)

// Handle is the type-erased view of a Database used by tooling that works
// across every entity, such as the admin console and the SQLite export.
type Handle interface {
	Name() string
	Path() string
	Len() int
	Columns() []string
	Mappings() []record.Mapping
	Lookup(id string) (any, error)
	Records() []any
	Remove(id string) error
}

var _ Handle = (*Database[struct{}])(nil)

// Columns returns the schema field names in order.
func (db *Database[T]) Columns() []string { return db.schema.Columns() }

// Mappings returns the string form of every record, in order.
func (db *Database[T]) Mappings() []record.Mapping {
	out := make([]record.Mapping, len(db.entries))
	for i, e := range db.entries {
		out[i] = slices.Clone(e.mapping)
	}
	return out
}

// Lookup is Get returning any.
func (db *Database[T]) Lookup(id string) (any, error) {
	rec, err := db.Get(id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Records returns every record as any, in order.
func (db *Database[T]) Records() []any {
	out := make([]any, 0, len(db.entries))
	for rec := range db.All() {
		out = append(out, rec)
	}
	return out
}
