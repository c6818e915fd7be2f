package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/rcliao/hms/internal/database"
	"github.com/rcliao/hms/internal/record"
)

// Layout places each entity's file under Dir. Every accessor opens a fresh
// store that reads the file at call time; keep the returned store only for
// the duration of one operation.
type Layout struct {
	Dir    string
	Logger *slog.Logger // optional
}

// Entity kind names, as used on the command line.
const (
	KindDoctor        = "doctor"
	KindPharmacist    = "pharmacist"
	KindAdministrator = "administrator"
	KindPatient       = "patient"
	KindMedication    = "medication"
	KindDiagnosis     = "diagnosis"
	KindPrescription  = "prescription"
	KindAppointment   = "appointment"
	KindOutcome       = "appointment-outcome"
	KindReplenishment = "replenishment-request"
)

var files = map[string]string{
	KindDoctor:        "doctors.txt",
	KindPharmacist:    "pharmacists.txt",
	KindAdministrator: "administrators.txt",
	KindPatient:       "patients.txt",
	KindMedication:    "medications.txt",
	KindDiagnosis:     "diagnoses.txt",
	KindPrescription:  "prescriptions.txt",
	KindAppointment:   "appointments.txt",
	KindOutcome:       "appointment_outcomes.txt",
	KindReplenishment: "replenishment_requests.txt",
}

// Kinds returns every entity kind name, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(files))
	for k := range files {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Path returns the backing file of kind.
func (l Layout) Path(kind string) string {
	return filepath.Join(l.Dir, files[kind])
}

func openTable[T any](l Layout, kind string, schema *record.Schema[T]) (Table[T], error) {
	var opts []database.Option
	if l.Logger != nil {
		opts = append(opts, database.WithLogger(l.Logger))
	}
	db, err := database.Open(l.Path(kind), schema, opts...)
	if err != nil {
		return Table[T]{}, err
	}
	return Table[T]{db: db}, nil
}

func (l Layout) Doctors() (*Doctors, error) {
	t, err := openTable(l, KindDoctor, doctorSchema)
	if err != nil {
		return nil, err
	}
	return &Doctors{t}, nil
}

func (l Layout) Pharmacists() (*Pharmacists, error) {
	t, err := openTable(l, KindPharmacist, pharmacistSchema)
	if err != nil {
		return nil, err
	}
	return &Pharmacists{t}, nil
}

func (l Layout) Administrators() (*Administrators, error) {
	t, err := openTable(l, KindAdministrator, administratorSchema)
	if err != nil {
		return nil, err
	}
	return &Administrators{t}, nil
}

func (l Layout) Patients() (*Patients, error) {
	t, err := openTable(l, KindPatient, patientSchema)
	if err != nil {
		return nil, err
	}
	return &Patients{t}, nil
}

func (l Layout) Medications() (*Medications, error) {
	t, err := openTable(l, KindMedication, medicationSchema)
	if err != nil {
		return nil, err
	}
	return &Medications{t}, nil
}

func (l Layout) Diagnoses() (*Diagnoses, error) {
	t, err := openTable(l, KindDiagnosis, diagnosisSchema)
	if err != nil {
		return nil, err
	}
	return &Diagnoses{t}, nil
}

func (l Layout) Prescriptions() (*Prescriptions, error) {
	t, err := openTable(l, KindPrescription, prescriptionSchema)
	if err != nil {
		return nil, err
	}
	return &Prescriptions{t}, nil
}

func (l Layout) Appointments() (*Appointments, error) {
	t, err := openTable(l, KindAppointment, appointmentSchema)
	if err != nil {
		return nil, err
	}
	return &Appointments{t}, nil
}

func (l Layout) AppointmentOutcomes() (*AppointmentOutcomes, error) {
	t, err := openTable(l, KindOutcome, outcomeSchema)
	if err != nil {
		return nil, err
	}
	return &AppointmentOutcomes{t}, nil
}

func (l Layout) ReplenishmentRequests() (*ReplenishmentRequests, error) {
	t, err := openTable(l, KindReplenishment, replenishmentSchema)
	if err != nil {
		return nil, err
	}
	return &ReplenishmentRequests{t}, nil
}

// Open returns the store of kind as a type-erased handle.
func (l Layout) Open(kind string) (database.Handle, error) {
	switch kind {
	case KindDoctor:
		return handle(l.Doctors())
	case KindPharmacist:
		return handle(l.Pharmacists())
	case KindAdministrator:
		return handle(l.Administrators())
	case KindPatient:
		return handle(l.Patients())
	case KindMedication:
		return handle(l.Medications())
	case KindDiagnosis:
		return handle(l.Diagnoses())
	case KindPrescription:
		return handle(l.Prescriptions())
	case KindAppointment:
		return handle(l.Appointments())
	case KindOutcome:
		return handle(l.AppointmentOutcomes())
	case KindReplenishment:
		return handle(l.ReplenishmentRequests())
	}
	return nil, fmt.Errorf("unknown entity kind %q (valid: %v)", kind, Kinds())
}

// OpenAll opens every store, in Kinds order.
func (l Layout) OpenAll() ([]database.Handle, error) {
	var out []database.Handle
	for _, k := range Kinds() {
		h, err := l.Open(k)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

type handler interface{ Handle() database.Handle }

func handle(s handler, err error) (database.Handle, error) {
	if err != nil {
		return nil, err
	}
	return s.Handle(), nil
}
