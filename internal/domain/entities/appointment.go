package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether the status is one of the known statuses.
// Transitions between statuses are deliberately unconstrained.
func (s AppointmentStatus) IsValid() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment represents a booked visit between a patient and a doctor.
// PatientName and DoctorName are snapshots taken at booking time and are
// never rewritten when a profile changes.
type Appointment struct {
	ID          string            `json:"id" db:"id"`
	PatientID   string            `json:"patient_id" db:"patient_id"`
	PatientName string            `json:"patient_name" db:"patient_name"`
	DoctorID    string            `json:"doctor_id" db:"doctor_id"`
	DoctorName  string            `json:"doctor_name" db:"doctor_name"`
	Date        string            `json:"date" db:"date"` // YYYY-MM-DD
	Time        string            `json:"time" db:"time"` // HH:MM
	Status      AppointmentStatus `json:"status" db:"status"`
	Notes       string            `json:"notes,omitempty" db:"notes"`   // doctor-authored
	Reason      string            `json:"reason,omitempty" db:"reason"` // patient-authored
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

// Statistics summarizes the clinic for the admin dashboard.
type Statistics struct {
	TotalAppointments int `json:"total_appointments"`
	TotalDoctors      int `json:"total_doctors"`
	TotalPatients     int `json:"total_patients"`
}
