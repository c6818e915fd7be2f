package store

import (
	"time"

	"github.com/rcliao/hms/internal/model"
)

// StaffParams holds the fields for creating a staff record.
type StaffParams struct {
	ID     string // generated when empty
	Name   string
	Email  string
	Gender model.Gender
	Age    int
}

// Doctors stores doctor records.
type Doctors struct{ Table[model.Doctor] }

// Create stores a new doctor.
func (s *Doctors) Create(p StaffParams, specialty string) (*model.Doctor, error) {
	d := model.Doctor{
		ID:        idOr(p.ID),
		Name:      p.Name,
		Email:     p.Email,
		Gender:    p.Gender,
		Age:       p.Age,
		Specialty: specialty,
	}
	return s.create(d, d.ID)
}

// Pharmacists stores pharmacist records.
type Pharmacists struct{ Table[model.Pharmacist] }

// Create stores a new pharmacist.
func (s *Pharmacists) Create(p StaffParams) (*model.Pharmacist, error) {
	ph := model.Pharmacist{ID: idOr(p.ID), Name: p.Name, Email: p.Email, Gender: p.Gender, Age: p.Age}
	return s.create(ph, ph.ID)
}

// Administrators stores administrator records.
type Administrators struct{ Table[model.Administrator] }

// Create stores a new administrator.
func (s *Administrators) Create(p StaffParams) (*model.Administrator, error) {
	a := model.Administrator{ID: idOr(p.ID), Name: p.Name, Email: p.Email, Gender: p.Gender, Age: p.Age}
	return s.create(a, a.ID)
}

// PatientParams holds the fields for registering a patient.
type PatientParams struct {
	ID          string // generated when empty
	Name        string
	Email       string
	DateOfBirth *time.Time
	Gender      model.Gender
	BloodType   model.BloodType
	Phone       string
	Allergies   []string
}

// Patients stores patient records.
type Patients struct{ Table[model.Patient] }

// Create registers a new patient. A second patient with the same email
// fails with ErrAlreadyExists.
func (s *Patients) Create(p PatientParams) (*model.Patient, error) {
	pt := model.Patient{
		ID:          idOr(p.ID),
		Name:        p.Name,
		Email:       p.Email,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		BloodType:   p.BloodType,
		Phone:       p.Phone,
		Allergies:   p.Allergies,
	}
	return s.create(pt, pt.ID)
}
