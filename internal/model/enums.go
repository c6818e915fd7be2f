// Package model defines the hospital record types.
package model

// Gender of a patient or staff member.
type Gender string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
	Other  Gender = "OTHER"
)

// ValidGenders are the allowed gender tags.
var ValidGenders = []string{string(Male), string(Female), string(Other)}

// BloodType of a patient.
type BloodType string

// ValidBloodTypes are the allowed blood type tags.
var ValidBloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Role of a hospital staff member.
type Role string

const (
	RoleDoctor        Role = "DOCTOR"
	RolePharmacist    Role = "PHARMACIST"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// ValidRoles are the allowed staff roles.
var ValidRoles = map[Role]bool{
	RoleDoctor:        true,
	RolePharmacist:    true,
	RoleAdministrator: true,
}

// AppointmentStatus tracks an appointment through its life.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// ValidAppointmentStatuses are the allowed appointment status tags.
var ValidAppointmentStatuses = []string{
	string(AppointmentPending),
	string(AppointmentConfirmed),
	string(AppointmentCancelled),
	string(AppointmentCompleted),
}

// PrescriptionStatus is whether a prescription has been handed out.
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "PENDING"
	PrescriptionDispensed PrescriptionStatus = "DISPENSED"
)

// ValidPrescriptionStatuses are the allowed prescription status tags.
var ValidPrescriptionStatuses = []string{string(PrescriptionPending), string(PrescriptionDispensed)}

// RequestStatus is the state of a replenishment request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// ValidRequestStatuses are the allowed replenishment request status tags.
var ValidRequestStatuses = []string{string(RequestPending), string(RequestApproved), string(RequestRejected)}
