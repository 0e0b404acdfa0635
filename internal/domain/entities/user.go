package entities

import (
	"time"
)

// UserRole represents the role an account holds in the clinic
type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleAdmin   UserRole = "admin"
)

// IsValid reports whether the role is one of the known roles
func (r UserRole) IsValid() bool {
	return r == RolePatient || r == RoleDoctor || r == RoleAdmin
}

// DoctorStatus represents where a doctor account is in the approval workflow
type DoctorStatus string

const (
	DoctorStatusPending  DoctorStatus = "pending"
	DoctorStatusApproved DoctorStatus = "approved"
	DoctorStatusRejected DoctorStatus = "rejected"
)

// IsValid reports whether the status is one of the known statuses
func (s DoctorStatus) IsValid() bool {
	return s == DoctorStatusPending || s == DoctorStatusApproved || s == DoctorStatusRejected
}

// User represents a clinic account: patient, doctor or admin.
// Doctor-only fields are empty for other roles.
type User struct {
	ID             string       `json:"id" db:"id"`
	Email          string       `json:"email" db:"email"`
	PasswordHash   string       `json:"-" db:"password_hash"`
	Name           string       `json:"name" db:"name"`
	Role           UserRole     `json:"role" db:"role"`
	DoctorStatus   DoctorStatus `json:"doctor_status,omitempty" db:"doctor_status"`
	Specialization string       `json:"specialization,omitempty" db:"specialization"`
	Phone          string       `json:"phone,omitempty" db:"phone"`
	Bio            string       `json:"bio,omitempty" db:"bio"`
	ClinicLocation string       `json:"clinic_location,omitempty" db:"clinic_location"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Sanitized returns a copy safe to hand to clients, with the credential
// hash cleared. Mirrors the "password is always blanked on the way out"
// contract of the directory.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	return &c
}

// PopularDoctor is a doctor annotated with their appointment volume.
type PopularDoctor struct {
	User
	AppointmentCount int `json:"appointment_count"`
}
