package model

import "time"

// Doctor is a member of the medical staff.
type Doctor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Gender    Gender `json:"gender,omitempty"`
	Age       int    `json:"age"`
	Specialty string `json:"specialty,omitempty"`
}

// Pharmacist dispenses prescriptions and manages stock.
type Pharmacist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Gender Gender `json:"gender,omitempty"`
	Age    int    `json:"age"`
}

// Administrator manages staff and inventory.
type Administrator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Gender Gender `json:"gender,omitempty"`
	Age    int    `json:"age"`
}

// Patient is a registered patient.
type Patient struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      Gender     `json:"gender,omitempty"`
	BloodType   BloodType  `json:"blood_type,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Allergies   []string   `json:"allergies,omitempty"`
}
