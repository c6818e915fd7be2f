// Package database provides Database, a generic file-backed record store.
//
// A Database holds every record of one type in memory and rewrites its whole
// backing file after each change. It is meant for a single user in a single
// process: there is no file lock, and two Database values opened on the same
// file do not see each other's changes. Open a fresh one when up-to-date data
// is needed.
package database

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/rcliao/hms/internal/flatfile"
	"github.com/rcliao/hms/internal/record"
)

// entry holds a record in its canonical string form. Reads decode a fresh
// value each time, so callers never share memory with the store and see
// exactly what the file holds.
type entry[T any] struct {
	mapping   record.Mapping
	key       string // folded identity key
	secondary string // folded secondary key, "" when absent
}

// Database stores records of type T in one flat file.
// It is not safe for concurrent use.
type Database[T any] struct {
	path    string
	schema  *record.Schema[T]
	logger  *slog.Logger
	entries []entry[T]
}

// Option configures a Database.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for load and save events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open creates a Database bound to path and loads it. A missing file gives
// an empty Database.
func Open[T any](path string, schema *record.Schema[T], opts ...Option) (*Database[T], error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	db := &Database[T]{
		path:   path,
		schema: schema,
		logger: o.logger.With("entity", schema.Name),
	}
	if err := db.Load(); err != nil {
		return nil, err
	}
	return db, nil
}

// Name returns the schema name of the stored records.
func (db *Database[T]) Name() string { return db.schema.Name }

// Path returns the backing file.
func (db *Database[T]) Path() string { return db.path }

// Load replaces the in-memory records with the contents of the file. On
// error the previous records are kept and nothing is partially loaded.
func (db *Database[T]) Load() error {
	mappings, err := flatfile.Read(db.path)
	if err != nil {
		return fmt.Errorf("load %s: %w", db.schema.Name, err)
	}

	entries := make([]entry[T], 0, len(mappings))
	seenKey := make(map[string]int, len(mappings))
	seenSecondary := make(map[string]int, len(mappings))
	for i, m := range mappings {
		e, err := db.decode(m)
		if err != nil {
			return fmt.Errorf("load %s: %w", db.schema.Name, db.locate(err, i+1))
		}
		if e.key == "" {
			return fmt.Errorf("load %s: %w", db.schema.Name,
				&record.DataError{Kind: record.ErrCorruptData, Path: db.path, Record: i + 1, Field: db.schema.Key, Reason: "missing identity key"})
		}
		if prev, dup := seenKey[e.key]; dup {
			return fmt.Errorf("load %s: %w", db.schema.Name,
				&record.DataError{Kind: record.ErrCorruptData, Path: db.path, Record: i + 1, Field: db.schema.Key, Reason: fmt.Sprintf("duplicates record %d", prev)})
		}
		seenKey[e.key] = i + 1
		if e.secondary != "" {
			if prev, dup := seenSecondary[e.secondary]; dup {
				return fmt.Errorf("load %s: %w", db.schema.Name,
					&record.DataError{Kind: record.ErrCorruptData, Path: db.path, Record: i + 1, Field: db.schema.SecondaryKey, Reason: fmt.Sprintf("duplicates record %d", prev)})
			}
			seenSecondary[e.secondary] = i + 1
		}
		entries = append(entries, e)
	}

	db.entries = entries
	db.logger.Debug("loaded", "path", db.path, "records", len(entries))
	return nil
}

// Save writes every record to the file, replacing its previous contents.
func (db *Database[T]) Save() error {
	mappings := make([]record.Mapping, len(db.entries))
	for i, e := range db.entries {
		mappings[i] = e.mapping
	}
	if err := flatfile.Write(db.path, mappings); err != nil {
		return fmt.Errorf("save %s: %w", db.schema.Name, err)
	}
	db.logger.Debug("saved", "path", db.path, "records", len(mappings))
	return nil
}

// Get returns the record whose identity key matches id, ignoring case.
func (db *Database[T]) Get(id string) (T, error) {
	if i := db.indexOf(id); i >= 0 {
		return db.schema.FromMapping(db.entries[i].mapping)
	}
	var zero T
	return zero, db.notFound(db.schema.Key, id)
}

// GetBySecondaryKey returns the record whose secondary key matches key,
// ignoring case.
func (db *Database[T]) GetBySecondaryKey(key string) (T, error) {
	var zero T
	if db.schema.SecondaryKey == "" || key == "" {
		return zero, db.notFound(db.schema.SecondaryKey, key)
	}
	folded := record.FoldKey(key)
	for _, e := range db.entries {
		if e.secondary == folded {
			return db.schema.FromMapping(e.mapping)
		}
	}
	return zero, db.notFound(db.schema.SecondaryKey, key)
}

// Contains reports whether Get(id) would succeed.
func (db *Database[T]) Contains(id string) bool {
	return db.indexOf(id) >= 0
}

// Add appends rec and saves. It fails with record.ErrAlreadyExists when the
// identity key or the secondary key is taken; both are checked before
// anything changes.
func (db *Database[T]) Add(rec T) error {
	e, err := db.encode(rec)
	if err != nil {
		return err
	}

	id, secondary := db.schema.Keys(e.mapping)
	var errs []error
	if db.indexOfFolded(e.key) >= 0 {
		errs = append(errs, db.exists(db.schema.Key, id))
	}
	if e.secondary != "" && db.indexOfSecondary(e.secondary, -1) >= 0 {
		errs = append(errs, db.exists(db.schema.SecondaryKey, secondary))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	prev := db.entries
	db.entries = append(slices.Clip(prev), e)
	return db.commit(prev)
}

// Update replaces the record with the same identity key as rec, keeping its
// position, and saves.
func (db *Database[T]) Update(rec T) error {
	e, err := db.encode(rec)
	if err != nil {
		return err
	}
	id, secondary := db.schema.Keys(e.mapping)
	i := db.indexOfFolded(e.key)
	if i < 0 {
		return db.notFound(db.schema.Key, id)
	}
	if e.secondary != "" && db.indexOfSecondary(e.secondary, i) >= 0 {
		return db.exists(db.schema.SecondaryKey, secondary)
	}

	prev := db.entries
	db.entries = slices.Clone(prev)
	db.entries[i] = e
	return db.commit(prev)
}

// Remove deletes the record with the given identity key and saves.
func (db *Database[T]) Remove(id string) error {
	i := db.indexOf(id)
	if i < 0 {
		return db.notFound(db.schema.Key, id)
	}
	prev := db.entries
	db.entries = slices.Delete(slices.Clone(prev), i, i+1)
	return db.commit(prev)
}

// Clear removes every record and saves an empty file.
func (db *Database[T]) Clear() error {
	prev := db.entries
	db.entries = nil
	return db.commit(prev)
}

// IsEmpty reports whether the Database holds no records.
func (db *Database[T]) IsEmpty() bool { return len(db.entries) == 0 }

// Len returns the number of records.
func (db *Database[T]) Len() int { return len(db.entries) }

// All returns the records in insertion order. The sequence is a snapshot:
// changes made afterwards are not visible to it, and it can be ranged over
// any number of times.
func (db *Database[T]) All() iter.Seq[T] {
	snapshot := db.entries
	return func(yield func(T) bool) {
		for _, e := range snapshot {
			if !yield(db.record(e)) {
				return
			}
		}
	}
}

// List returns a copy of the records in insertion order.
func (db *Database[T]) List() []T {
	return slices.Collect(db.All())
}

// commit saves the current entries and restores prev if the save fails, so
// memory never runs ahead of the file.
func (db *Database[T]) commit(prev []entry[T]) error {
	if err := db.Save(); err != nil {
		db.entries = prev
		return err
	}
	return nil
}

// record decodes an entry. Every entry's mapping has already decoded once,
// in encode or decode, so failure here means the schema hooks disagree.
func (db *Database[T]) record(e entry[T]) T {
	rec, err := db.schema.FromMapping(e.mapping)
	if err != nil {
		panic(fmt.Sprintf("database: %s: stored mapping no longer decodes: %v", db.schema.Name, err))
	}
	return rec
}

func (db *Database[T]) encode(rec T) (entry[T], error) {
	m, err := db.schema.ToMapping(rec)
	if err != nil {
		return entry[T]{}, err
	}
	id, secondary := db.schema.Keys(m)
	if id == "" {
		return entry[T]{}, fmt.Errorf("%s: %w: empty %s", db.schema.Name, record.ErrInvalidRecord, db.schema.Key)
	}
	if _, err := db.schema.FromMapping(m); err != nil {
		return entry[T]{}, err
	}
	return db.newEntry(m, id, secondary), nil
}

func (db *Database[T]) decode(m record.Mapping) (entry[T], error) {
	rec, err := db.schema.FromMapping(m)
	if err != nil {
		return entry[T]{}, err
	}
	// Re-encode so the stored mapping is in schema order with every field.
	canonical, err := db.schema.ToMapping(rec)
	if err != nil {
		return entry[T]{}, err
	}
	id, secondary := db.schema.Keys(canonical)
	return db.newEntry(canonical, id, secondary), nil
}

func (db *Database[T]) newEntry(m record.Mapping, id, secondary string) entry[T] {
	e := entry[T]{mapping: m, key: record.FoldKey(id)}
	if secondary != "" {
		e.secondary = record.FoldKey(secondary)
	}
	return e
}

func (db *Database[T]) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return db.indexOfFolded(record.FoldKey(id))
}

func (db *Database[T]) indexOfFolded(key string) int {
	return slices.IndexFunc(db.entries, func(e entry[T]) bool { return e.key == key })
}

// indexOfSecondary finds another record holding the folded secondary key,
// skipping position skip.
func (db *Database[T]) indexOfSecondary(secondary string, skip int) int {
	for i, e := range db.entries {
		if i != skip && e.secondary == secondary {
			return i
		}
	}
	return -1
}

func (db *Database[T]) notFound(field, value string) error {
	return fmt.Errorf("%s %s %q: %w", db.schema.Name, field, value, record.ErrNotFound)
}

func (db *Database[T]) exists(field, value string) error {
	return fmt.Errorf("%s %s %q: %w", db.schema.Name, field, value, record.ErrAlreadyExists)
}

// locate fills in file position details on decoding errors.
func (db *Database[T]) locate(err error, index int) error {
	var de *record.DataError
	if errors.As(err, &de) {
		de.Path = db.path
		de.Record = index
	}
	return err
}
