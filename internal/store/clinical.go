package store

import (
	"strings"
	"time"

	"github.com/rcliao/hms/internal/model"
)

// DiagnosisParams holds the fields for recording a diagnosis.
type DiagnosisParams struct {
	ID        string // generated when empty
	PatientID string
	DoctorID  string
	Condition string
	Notes     string
}

// Diagnoses stores diagnoses.
type Diagnoses struct{ Table[model.Diagnosis] }

// Create records a diagnosis stamped with the current time.
func (s *Diagnoses) Create(p DiagnosisParams) (*model.Diagnosis, error) {
	d := model.Diagnosis{
		ID:          idOr(p.ID),
		PatientID:   p.PatientID,
		DoctorID:    p.DoctorID,
		Condition:   p.Condition,
		Notes:       p.Notes,
		DiagnosedAt: now(),
	}
	return s.create(d, d.ID)
}

// ForPatient returns a patient's diagnoses in the order they were made.
func (s *Diagnoses) ForPatient(patientID string) []model.Diagnosis {
	return s.filter(func(d model.Diagnosis) bool { return strings.EqualFold(d.PatientID, patientID) })
}

// PrescriptionParams holds the fields for writing a prescription.
type PrescriptionParams struct {
	ID           string // generated when empty
	DiagnosisID  string
	MedicationID string
	Quantity     int
	Instructions string
}

// Prescriptions stores prescriptions.
type Prescriptions struct{ Table[model.Prescription] }

// Create writes a pending prescription.
func (s *Prescriptions) Create(p PrescriptionParams) (*model.Prescription, error) {
	rx := model.Prescription{
		ID:           idOr(p.ID),
		DiagnosisID:  p.DiagnosisID,
		MedicationID: p.MedicationID,
		Quantity:     p.Quantity,
		Instructions: p.Instructions,
		Status:       model.PrescriptionPending,
	}
	return s.create(rx, rx.ID)
}

// ForDiagnosis returns the prescriptions written for a diagnosis.
func (s *Prescriptions) ForDiagnosis(diagnosisID string) []model.Prescription {
	return s.filter(func(rx model.Prescription) bool { return strings.EqualFold(rx.DiagnosisID, diagnosisID) })
}

// AppointmentParams holds the fields for booking an appointment.
type AppointmentParams struct {
	ID        string // generated when empty
	PatientID string
	DoctorID  string
	Slot      time.Time
}

// Appointments stores appointments.
type Appointments struct{ Table[model.Appointment] }

// Create books a pending appointment.
func (s *Appointments) Create(p AppointmentParams) (*model.Appointment, error) {
	a := model.Appointment{
		ID:        idOr(p.ID),
		PatientID: p.PatientID,
		DoctorID:  p.DoctorID,
		Status:    model.AppointmentPending,
	}
	if !p.Slot.IsZero() {
		slot := p.Slot.UTC()
		a.Slot = &slot
	}
	return s.create(a, a.ID)
}

// ForPatient returns the appointments of a patient.
func (s *Appointments) ForPatient(patientID string) []model.Appointment {
	return s.filter(func(a model.Appointment) bool { return strings.EqualFold(a.PatientID, patientID) })
}

// ForDoctor returns the appointments of a doctor.
func (s *Appointments) ForDoctor(doctorID string) []model.Appointment {
	return s.filter(func(a model.Appointment) bool { return strings.EqualFold(a.DoctorID, doctorID) })
}

// OutcomeParams holds the fields for recording an appointment outcome.
type OutcomeParams struct {
	AppointmentID string
	ServiceType   string
	Notes         string
	Prescriptions []string
}

// AppointmentOutcomes stores appointment outcomes, keyed by appointment ID.
type AppointmentOutcomes struct{ Table[model.AppointmentOutcome] }

// Create records the outcome of an appointment. An appointment has at most
// one outcome.
func (s *AppointmentOutcomes) Create(p OutcomeParams) (*model.AppointmentOutcome, error) {
	o := model.AppointmentOutcome{
		ID:            p.AppointmentID,
		ServiceType:   p.ServiceType,
		Notes:         p.Notes,
		Prescriptions: p.Prescriptions,
		RecordedAt:    now(),
	}
	return s.create(o, o.ID)
}
