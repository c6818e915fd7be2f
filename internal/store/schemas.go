package store

import (
	"github.com/rcliao/hms/internal/model"
	"github.com/rcliao/hms/internal/record"
)

// Field names double as the on-disk attribute names; renaming one breaks
// existing files.

var staffFields = []record.Field{
	{Name: "id", Kind: record.String},
	{Name: "name", Kind: record.String},
	{Name: "email", Kind: record.String},
	{Name: "gender", Kind: record.Enum, Tags: model.ValidGenders},
	{Name: "age", Kind: record.Int},
}

var doctorSchema = record.MustSchema(record.Schema[model.Doctor]{
	Name:         "doctor",
	Fields:       append(append([]record.Field{}, staffFields...), record.Field{Name: "specialty", Kind: record.String}),
	Key:          "id",
	SecondaryKey: "email",
	Encode: func(d model.Doctor, e *record.Encoder) {
		e.String("id", d.ID)
		e.String("name", d.Name)
		e.String("email", d.Email)
		e.Enum("gender", string(d.Gender))
		e.Int("age", d.Age)
		e.String("specialty", d.Specialty)
	},
	Decode: func(d *record.Decoder) model.Doctor {
		return model.Doctor{
			ID:        d.String("id"),
			Name:      d.String("name"),
			Email:     d.String("email"),
			Gender:    record.EnumOf[model.Gender](d, "gender"),
			Age:       d.Int("age"),
			Specialty: d.String("specialty"),
		}
	},
})

var pharmacistSchema = record.MustSchema(record.Schema[model.Pharmacist]{
	Name:         "pharmacist",
	Fields:       staffFields,
	Key:          "id",
	SecondaryKey: "email",
	Encode: func(p model.Pharmacist, e *record.Encoder) {
		e.String("id", p.ID)
		e.String("name", p.Name)
		e.String("email", p.Email)
		e.Enum("gender", string(p.Gender))
		e.Int("age", p.Age)
	},
	Decode: func(d *record.Decoder) model.Pharmacist {
		return model.Pharmacist{
			ID:     d.String("id"),
			Name:   d.String("name"),
			Email:  d.String("email"),
			Gender: record.EnumOf[model.Gender](d, "gender"),
			Age:    d.Int("age"),
		}
	},
})

var administratorSchema = record.MustSchema(record.Schema[model.Administrator]{
	Name:         "administrator",
	Fields:       staffFields,
	Key:          "id",
	SecondaryKey: "email",
	Encode: func(a model.Administrator, e *record.Encoder) {
		e.String("id", a.ID)
		e.String("name", a.Name)
		e.String("email", a.Email)
		e.Enum("gender", string(a.Gender))
		e.Int("age", a.Age)
	},
	Decode: func(d *record.Decoder) model.Administrator {
		return model.Administrator{
			ID:     d.String("id"),
			Name:   d.String("name"),
			Email:  d.String("email"),
			Gender: record.EnumOf[model.Gender](d, "gender"),
			Age:    d.Int("age"),
		}
	},
})

var patientSchema = record.MustSchema(record.Schema[model.Patient]{
	Name: "patient",
	Fields: []record.Field{
		{Name: "id", Kind: record.String},
		{Name: "name", Kind: record.String},
		{Name: "email", Kind: record.String},
		{Name: "dateOfBirth", Kind: record.Time},
		{Name: "gender", Kind: record.Enum, Tags: model.ValidGenders},
		{Name: "bloodType", Kind: record.Enum, Tags: model.ValidBloodTypes},
		{Name: "phone", Kind: record.String},
		{Name: "allergies", Kind: record.StringList},
	},
	Key:          "id",
	SecondaryKey: "email",
	Encode: func(p model.Patient, e *record.Encoder) {
		e.String("id", p.ID)
		e.String("name", p.Name)
		e.String("email", p.Email)
		e.Time("dateOfBirth", p.DateOfBirth)
		e.Enum("gender", string(p.Gender))
		e.Enum("bloodType", string(p.BloodType))
		e.String("phone", p.Phone)
		e.List("allergies", p.Allergies)
	},
	Decode: func(d *record.Decoder) model.Patient {
		return model.Patient{
			ID:          d.String("id"),
			Name:        d.String("name"),
			Email:       d.String("email"),
			DateOfBirth: d.Time("dateOfBirth"),
			Gender:      record.EnumOf[model.Gender](d, "gender"),
			BloodType:   record.EnumOf[model.BloodType](d, "bloodType"),
			Phone:       d.String("phone"),
			Allergies:   d.List("allergies"),
		}
	},
})

var medicationSchema = record.MustSchema(record.Schema[model.Medication]{
	Name: "medication",
	Fields: []record.Field{
		{Name: "id", Kind: record.String},
		{Name: "name", Kind: record.String},
		{Name: "stock", Kind: record.Int},
		{Name: "lowStockAlert", Kind: record.Int},
	},
	Key: "id",
	Encode: func(m model.Medication, e *record.Encoder) {
		e.String("id", m.ID)
		e.String("name", m.Name)
		e.Int("stock", m.Stock)
		e.Int("lowStockAlert", m.LowStockAlert)
	},
	Decode: func(d *record.Decoder) model.Medication {
		return model.Medication{
			ID:            d.String("id"),
			Name:          d.String("name"),
			Stock:         d.Int("stock"),
			LowStockAlert: d.Int("lowStockAlert"),
		}
	},
})

var diagnosisSchema = record.MustSchema(record.Schema[model.Diagnosis]{
	Name: "diagnosis",
	Fields: []record.Field{
		{Name: "id", Kind: record.String},
		{Name: "patientId", Kind: record.String},
		{Name: "doctorId", Kind: record.String},
		{Name: "condition", Kind: record.String},
		{Name: "notes", Kind: record.String},
		{Name: "diagnosedAt", Kind: record.Time},
	},
	Key: "id",
	Encode: func(g model.Diagnosis, e *record.Encoder) {
		e.String("id", g.ID)
		e.String("patientId", g.PatientID)
		e.String("doctorId", g.DoctorID)
		e.String("condition", g.Condition)
		e.String("notes", g.Notes)
		e.Time("diagnosedAt", g.DiagnosedAt)
	},
	Decode: func(d *record.Decoder) model.Diagnosis {
		return model.Diagnosis{
			ID:          d.String("id"),
			PatientID:   d.String("patientId"),
			DoctorID:    d.String("doctorId"),
			Condition:   d.String("condition"),
			Notes:       d.String("notes"),
			DiagnosedAt: d.Time("diagnosedAt"),
		}
	},
})

var prescriptionSchema = record.MustSchema(record.Schema[model.Prescription]{
	Name: "prescription",
	Fields: []record.Field{
		{Name: "id", Kind: record.String},
		{Name: "diagnosisId", Kind: record.String},
		{Name: "medicationId", Kind: record.String},
		{Name: "quantity", Kind: record.Int},
		{Name: "instructions", Kind: record.String},
		{Name: "status", Kind: record.Enum, Tags: model.ValidPrescriptionStatuses},
	},
	Key: "id",
	Encode: func(p model.Prescription, e *record.Encoder) {
		e.String("id", p.ID)
		e.String("diagnosisId", p.DiagnosisID)
		e.String("medicationId", p.MedicationID)
		e.Int("quantity", p.Quantity)
		e.String("instructions", p.Instructions)
		e.Enum("status", string(p.Status))
	},
	Decode: func(d *record.Decoder) model.Prescription {
		return model.Prescription{
			ID:           d.String("id"),
			DiagnosisID:  d.String("diagnosisId"),
			MedicationID: d.String("medicationId"),
			Quantity:     d.Int("quantity"),
			Instructions: d.String("instructions"),
			Status:       record.EnumOf[model.PrescriptionStatus](d, "status"),
		}
	},
})

var appointmentSchema = record.MustSchema(record.Schema[model.Appointment]{
	Name: "appointment",
	Fields: []record.Field{
		{Name: "id", Kind: record.String},
		{Name: "patientId", Kind: record.String},
		{Name: "doctorId", Kind: record.String},
		{Name: "slot", Kind: record.Time},
		{Name: "status", Kind: record.Enum, Tags: model.ValidAppointmentStatuses},
	},
	Key: "id",
	Encode: func(a model.Appointment, e *record.Encoder) {
		e.String("id", a.ID)
		e.String("patientId", a.PatientID)
		e.String("doctorId", a.DoctorID)
		e.Time("slot", a.Slot)
		e.Enum("status", string(a.Status))
	},
	Decode: func(d *record.Decoder) model.Appointment {
		return model.Appointment{
			ID:        d.String("id"),
			PatientID: d.String("patientId"),
			DoctorID:  d.String("doctorId"),
			Slot:      d.Time("slot"),
			Status:    record.EnumOf[model.AppointmentStatus](d, "status"),
		}
	},
})

var outcomeSchema = record.MustSchema(record.Schema[model.AppointmentOutcome]{
	Name: "appointment-outcome",
	Fields: []record.Field{
		{Name: "id", Kind: record.String},
		{Name: "serviceType", Kind: record.String},
		{Name: "notes", Kind: record.String},
		{Name: "prescriptions", Kind: record.StringList},
		{Name: "recordedAt", Kind: record.Time},
	},
	Key: "id",
	Encode: func(o model.AppointmentOutcome, e *record.Encoder) {
		e.String("id", o.ID)
		e.String("serviceType", o.ServiceType)
		e.String("notes", o.Notes)
		e.List("prescriptions", o.Prescriptions)
		e.Time("recordedAt", o.RecordedAt)
	},
	Decode: func(d *record.Decoder) model.AppointmentOutcome {
		return model.AppointmentOutcome{
			ID:            d.String("id"),
			ServiceType:   d.String("serviceType"),
			Notes:         d.String("notes"),
			Prescriptions: d.List("prescriptions"),
			RecordedAt:    d.Time("recordedAt"),
		}
	},
})

var replenishmentSchema = record.MustSchema(record.Schema[model.ReplenishmentRequest]{
	Name: "replenishment-request",
	Fields: []record.Field{
		{Name: "id", Kind: record.String},
		{Name: "medicationId", Kind: record.String},
		{Name: "quantity", Kind: record.Int},
		{Name: "requestedBy", Kind: record.String},
		{Name: "status", Kind: record.Enum, Tags: model.ValidRequestStatuses},
		{Name: "requestedAt", Kind: record.Time},
	},
	Key: "id",
	Encode: func(r model.ReplenishmentRequest, e *record.Encoder) {
		e.String("id", r.ID)
		e.String("medicationId", r.MedicationID)
		e.Int("quantity", r.Quantity)
		e.String("requestedBy", r.RequestedBy)
		e.Enum("status", string(r.Status))
		e.Time("requestedAt", r.RequestedAt)
	},
	Decode: func(d *record.Decoder) model.ReplenishmentRequest {
		return model.ReplenishmentRequest{
			ID:           d.String("id"),
			MedicationID: d.String("medicationId"),
			Quantity:     d.Int("quantity"),
			RequestedBy:  d.String("requestedBy"),
			Status:       record.EnumOf[model.RequestStatus](d, "status"),
			RequestedAt:  d.Time("requestedAt"),
		}
	},
})
