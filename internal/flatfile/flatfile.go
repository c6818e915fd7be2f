// Package flatfile stores a list of record mappings in one text file.
//
// Each record is written as name, value, name, value... joined by
// record.FieldSeparator and terminated by record.RecordSeparator and a
// newline. The newline only keeps the file readable in a pager.
package flatfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcliao/hms/internal/record"
)

const terminator = record.RecordSeparator + "\n"

// Read loads every mapping stored at path. A missing file holds no records.
func Read(path string) ([]record.Mapping, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out, err := Decode(f)
	if err != nil {
		var de *record.DataError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return out, nil
}

// Decode parses the file format from r.
func Decode(r io.Reader) ([]record.Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var out []record.Mapping
	chunks := strings.Split(string(data), record.RecordSeparator)
	for i, chunk := range chunks {
		chunk = strings.TrimPrefix(chunk, "\n")
		if chunk == "" {
			if i == len(chunks)-1 {
				break
			}
			return nil, &record.DataError{Kind: record.ErrCorruptData, Record: i + 1, Reason: "empty record"}
		}
		if i == len(chunks)-1 {
			return nil, &record.DataError{Kind: record.ErrCorruptData, Record: i + 1, Reason: "record not terminated"}
		}
		m, err := decodeRecord(chunk)
		if err != nil {
			err.Record = i + 1
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeRecord(chunk string) (record.Mapping, *record.DataError) {
	tokens := strings.Split(chunk, record.FieldSeparator)
	if len(tokens)%2 != 0 {
		return nil, &record.DataError{Kind: record.ErrCorruptData, Reason: fmt.Sprintf("%d tokens, want name/value pairs", len(tokens))}
	}

	m := make(record.Mapping, 0, len(tokens)/2)
	seen := make(map[string]bool, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		name, value := tokens[i], tokens[i+1]
		if name == "" {
			return nil, &record.DataError{Kind: record.ErrCorruptData, Reason: fmt.Sprintf("empty field name at pair %d", i/2+1)}
		}
		if seen[name] {
			return nil, &record.DataError{Kind: record.ErrCorruptData, Field: name, Reason: "duplicate field"}
		}
		seen[name] = true
		m = append(m, record.Pair{Name: name, Value: value})
	}
	return m, nil
}

// Encode writes mappings to w in file format.
func Encode(w io.Writer, mappings []record.Mapping) error {
	var buf bytes.Buffer
	for i, m := range mappings {
		if len(m) == 0 {
			return fmt.Errorf("record %d: no fields", i+1)
		}
		for j, p := range m {
			if p.Name == "" || record.HasReserved(p.Name) {
				return &record.DataError{Kind: record.ErrReservedToken, Record: i + 1, Field: p.Name, Reason: "bad field name"}
			}
			if p.Value != record.Empty && record.HasReserved(p.Value) {
				return &record.DataError{Kind: record.ErrReservedToken, Record: i + 1, Field: p.Name}
			}
			if j > 0 {
				buf.WriteString(record.FieldSeparator)
			}
			buf.WriteString(p.Name)
			buf.WriteString(record.FieldSeparator)
			buf.WriteString(p.Value)
		}
		buf.WriteString(terminator)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Write replaces the file at path with mappings. The data goes to a
// temporary file in the same directory first and is renamed into place,
// so a crash mid-write leaves the previous file intact.
func Write(path string, mappings []record.Mapping) error {
	var buf bytes.Buffer
	if err := Encode(&buf, mappings); err != nil {
		var de *record.DataError
		if errors.As(err, &de) {
			de.Path = path
		}
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
