package model

import "time"

// Medication is a stocked drug.
type Medication struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Stock         int    `json:"stock"`
	LowStockAlert int    `json:"low_stock_alert"`
}

// IsLow reports whether stock is at or below the alert level.
func (m Medication) IsLow() bool {
	return m.Stock <= m.LowStockAlert
}

// Diagnosis records a doctor's finding for a patient.
type Diagnosis struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	DoctorID    string     `json:"doctor_id"`
	Condition   string     `json:"condition"`
	Notes       string     `json:"notes,omitempty"`
	DiagnosedAt *time.Time `json:"diagnosed_at,omitempty"`
}

// Prescription links a diagnosis to a medication.
type Prescription struct {
	ID           string             `json:"id"`
	DiagnosisID  string             `json:"diagnosis_id"`
	MedicationID string             `json:"medication_id"`
	Quantity     int                `json:"quantity"`
	Instructions string             `json:"instructions,omitempty"`
	Status       PrescriptionStatus `json:"status"`
}

// Appointment is a booked slot between a patient and a doctor.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id"`
	DoctorID  string            `json:"doctor_id"`
	Slot      *time.Time        `json:"slot,omitempty"`
	Status    AppointmentStatus `json:"status"`
}

// AppointmentOutcome is what happened at a completed appointment. Its ID is
// the appointment's ID.
type AppointmentOutcome struct {
	ID            string     `json:"id"`
	ServiceType   string     `json:"service_type"`
	Notes         string     `json:"notes,omitempty"`
	Prescriptions []string   `json:"prescriptions,omitempty"`
	RecordedAt    *time.Time `json:"recorded_at,omitempty"`
}

// ReplenishmentRequest asks an administrator to restock a medication.
type ReplenishmentRequest struct {
	ID           string        `json:"id"`
	MedicationID string        `json:"medication_id"`
	Quantity     int           `json:"quantity"`
	RequestedBy  string        `json:"requested_by"`
	Status       RequestStatus `json:"status"`
	RequestedAt  *time.Time    `json:"requested_at,omitempty"`
}
