// Package store provides the per-entity record stores of the hospital
// system, each backed by its own flat file.
package store

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/hms/internal/database"
	"github.com/rcliao/hms/internal/record"
)

// Re-exported error kinds so callers only need this package.
var (
	ErrNotFound       = record.ErrNotFound
	ErrAlreadyExists  = record.ErrAlreadyExists
	ErrCorruptData    = record.ErrCorruptData
	ErrSchemaMismatch = record.ErrSchemaMismatch
)

// Table is the lookup and maintenance surface shared by every entity store.
type Table[T any] struct {
	db *database.Database[T]
}

// FindByID returns the record with the given identity key.
func (t *Table[T]) FindByID(id string) (T, error) { return t.db.Get(id) }

// FindByEmail returns the record with the given email address.
// Entities without an email never match.
func (t *Table[T]) FindByEmail(email string) (T, error) { return t.db.GetBySecondaryKey(email) }

// Exists reports whether a record with the identity key is stored.
func (t *Table[T]) Exists(id string) bool { return t.db.Contains(id) }

// Insert stores a fully built record, such as one read from an import.
func (t *Table[T]) Insert(rec T) error { return t.db.Add(rec) }

// Update replaces the stored record with the same identity key.
func (t *Table[T]) Update(rec T) error { return t.db.Update(rec) }

// Delete removes the record with the given identity key.
func (t *Table[T]) Delete(id string) error { return t.db.Remove(id) }

// List returns every record in insertion order.
func (t *Table[T]) List() []T { return t.db.List() }

// IsEmpty reports whether no records are stored.
func (t *Table[T]) IsEmpty() bool { return t.db.IsEmpty() }

// Len returns the number of stored records.
func (t *Table[T]) Len() int { return t.db.Len() }

// Handle exposes the underlying database to generic tooling.
func (t *Table[T]) Handle() database.Handle { return t.db }

// create adds rec and returns it as stored, so the caller sees exactly
// what a later read of the file would give.
func (t *Table[T]) create(rec T, id string) (*T, error) {
	if err := t.db.Add(rec); err != nil {
		return nil, err
	}
	stored, err := t.db.Get(id)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// filter returns the records for which keep is true.
func (t *Table[T]) filter(keep func(T) bool) []T {
	var out []T
	for rec := range t.db.All() {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// idOr returns id, or a fresh ULID when id is empty.
func idOr(id string) string {
	if id != "" {
		return id
	}
	return newID()
}

func now() *time.Time {
	t := time.Now().UTC().Truncate(time.Second)
	return &t
}
