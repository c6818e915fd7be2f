// Package seed performs the first-run import of staff, patients and
// medications from comma-separated files.
//
// Columns are positional and the first row is a header that is skipped.
// An import runs only while its target stores are empty, so running it
// again is a no-op. Imports are all-or-nothing: every row is parsed and
// checked before the first record is written, and if a write still fails
// the records already written by that import are removed again.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/hms/internal/model"
	"github.com/rcliao/hms/internal/store"
)

// ErrBadInput marks a row the import file got wrong.
var ErrBadInput = errors.New("bad input")

// DateFormat is the layout of dates in import files.
const DateFormat = "2006-01-02"

// Result reports what an import did.
type Result struct {
	Kind     string `json:"kind"`
	Imported int    `json:"imported"`
	Skipped  bool   `json:"skipped,omitempty"` // store already populated
}

// Importer loads seed files into the stores of a Layout.
type Importer struct {
	Layout store.Layout
	Logger *slog.Logger
}

func (im *Importer) logger() *slog.Logger {
	if im.Logger != nil {
		return im.Logger
	}
	return slog.Default()
}

// Medications imports rows of: Name, InitialStock, LowStockAlert.
func (im *Importer) Medications(r io.Reader) (Result, error) {
	res := Result{Kind: store.KindMedication}
	meds, err := im.Layout.Medications()
	if err != nil {
		return res, err
	}
	if !meds.IsEmpty() {
		res.Skipped = true
		im.logger().Info("medications already loaded", "records", meds.Len())
		return res, nil
	}

	var b batch
	err = eachRow(r, 3, func(line int, row []string) error {
		stock, err := atoi(row[1])
		if err != nil {
			return fmt.Errorf("line %d: stock: %w", line, err)
		}
		alert, err := atoi(row[2])
		if err != nil {
			return fmt.Errorf("line %d: low stock alert: %w", line, err)
		}
		if stock < 0 || alert < 0 {
			return fmt.Errorf("line %d: stock and alert level must not be negative", line)
		}
		p := store.MedicationParams{Name: strings.TrimSpace(row[0]), Stock: stock, LowStockAlert: alert}
		b.add(line, func() (string, error) {
			m, err := meds.Create(p)
			if err != nil {
				return "", err
			}
			return m.ID, nil
		}, meds.Delete)
		return nil
	})
	if err != nil {
		return res, err
	}
	res.Imported, err = b.run(im.logger())
	return res, err
}

// Staff imports rows of: ID, Name, Role, Gender, Age, Email. Rows are routed
// to the doctor, pharmacist or administrator store by Role. The import is
// skipped when any of those stores already holds records.
func (im *Importer) Staff(r io.Reader) (Result, error) {
	res := Result{Kind: "staff"}
	docs, err := im.Layout.Doctors()
	if err != nil {
		return res, err
	}
	phs, err := im.Layout.Pharmacists()
	if err != nil {
		return res, err
	}
	admins, err := im.Layout.Administrators()
	if err != nil {
		return res, err
	}
	if !docs.IsEmpty() || !phs.IsEmpty() || !admins.IsEmpty() {
		res.Skipped = true
		im.logger().Info("staff already loaded",
			"doctors", docs.Len(), "pharmacists", phs.Len(), "administrators", admins.Len())
		return res, nil
	}

	var b batch
	err = eachRow(r, 5, func(line int, row []string) error {
		age, err := atoi(row[4])
		if err != nil {
			return fmt.Errorf("line %d: age: %w", line, err)
		}
		p := store.StaffParams{
			ID:     strings.TrimSpace(row[0]),
			Name:   strings.TrimSpace(row[1]),
			Gender: model.Gender(strings.ToUpper(strings.TrimSpace(row[3]))),
			Age:    age,
		}
		if len(row) > 5 {
			p.Email = strings.TrimSpace(row[5])
		}
		if err := checkTag("gender", string(p.Gender), model.ValidGenders); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		switch role := model.Role(strings.ToUpper(strings.TrimSpace(row[2]))); role {
		case model.RoleDoctor:
			b.add(line, func() (string, error) {
				d, err := docs.Create(p, "")
				if err != nil {
					return "", err
				}
				return d.ID, nil
			}, docs.Delete)
		case model.RolePharmacist:
			b.add(line, func() (string, error) {
				ph, err := phs.Create(p)
				if err != nil {
					return "", err
				}
				return ph.ID, nil
			}, phs.Delete)
		case model.RoleAdministrator:
			b.add(line, func() (string, error) {
				a, err := admins.Create(p)
				if err != nil {
					return "", err
				}
				return a.ID, nil
			}, admins.Delete)
		default:
			return fmt.Errorf("line %d: unknown role %q", line, row[2])
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	res.Imported, err = b.run(im.logger())
	return res, err
}

// Patients imports rows of: ID, Name, DateOfBirth, Gender, BloodType, Email,
// Phone.
func (im *Importer) Patients(r io.Reader) (Result, error) {
	res := Result{Kind: store.KindPatient}
	patients, err := im.Layout.Patients()
	if err != nil {
		return res, err
	}
	if !patients.IsEmpty() {
		res.Skipped = true
		im.logger().Info("patients already loaded", "records", patients.Len())
		return res, nil
	}

	var b batch
	err = eachRow(r, 5, func(line int, row []string) error {
		p := store.PatientParams{
			ID:        strings.TrimSpace(row[0]),
			Name:      strings.TrimSpace(row[1]),
			Gender:    model.Gender(strings.ToUpper(strings.TrimSpace(row[3]))),
			BloodType: model.BloodType(strings.ToUpper(strings.TrimSpace(row[4]))),
		}
		if dob := strings.TrimSpace(row[2]); dob != "" {
			t, err := time.Parse(DateFormat, dob)
			if err != nil {
				return fmt.Errorf("line %d: date of birth: %w", line, err)
			}
			p.DateOfBirth = &t
		}
		if len(row) > 5 {
			p.Email = strings.TrimSpace(row[5])
		}
		if len(row) > 6 {
			p.Phone = strings.TrimSpace(row[6])
		}
		if err := checkTag("gender", string(p.Gender), model.ValidGenders); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := checkTag("blood type", string(p.BloodType), model.ValidBloodTypes); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		b.add(line, func() (string, error) {
			pt, err := patients.Create(p)
			if err != nil {
				return "", err
			}
			return pt.ID, nil
		}, patients.Delete)
		return nil
	})
	if err != nil {
		return res, err
	}
	res.Imported, err = b.run(im.logger())
	return res, err
}

// batch holds the writes of one import until every row has parsed.
type batch struct {
	steps []step
}

type step struct {
	line   int
	create func() (id string, err error)
	remove func(id string) error
}

func (b *batch) add(line int, create func() (string, error), remove func(string) error) {
	b.steps = append(b.steps, step{line: line, create: create, remove: remove})
}

// run performs the writes in order. On failure it removes what it wrote,
// newest first, and reports the failing line.
func (b *batch) run(logger *slog.Logger) (int, error) {
	type written struct {
		id     string
		remove func(string) error
	}
	var done []written
	for _, s := range b.steps {
		id, err := s.create()
		if err == nil {
			done = append(done, written{id, s.remove})
			continue
		}
		for i := len(done) - 1; i >= 0; i-- {
			if rerr := done[i].remove(done[i].id); rerr != nil {
				logger.Error("undo seeded record", "id", done[i].id, "err", rerr)
			}
		}
		return 0, fmt.Errorf("line %d: %w", s.line, err)
	}
	return len(done), nil
}

// checkTag rejects a non-empty value outside valid, before it reaches a store.
func checkTag(field, v string, valid []string) error {
	if v == "" || slices.Contains(valid, v) {
		return nil
	}
	return fmt.Errorf("%s %q: want one of %v: %w", field, v, valid, ErrBadInput)
}

// File opens path and runs one of the import methods on it.
func File(path string, load func(io.Reader) (Result, error)) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return load(f)
}

// eachRow calls fn for every data row, skipping the header. Rows shorter
// than minCols are rejected.
func eachRow(r io.Reader, minCols int, fn func(line int, row []string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	line := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 || isBlank(row) {
			continue
		}
		if len(row) < minCols {
			return fmt.Errorf("line %d: %d columns, want at least %d", line, len(row), minCols)
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
