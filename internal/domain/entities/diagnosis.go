package entities

import "time"

// Diagnosis is a free-text clinical record tied to one doctor-patient
// pair. It may reference the appointment it came out of but lives
// independently of it. Nothing prevents two records for the same pair;
// updates mutate an existing record in place.
type Diagnosis struct {
	ID            string    `json:"id" db:"id"`
	PatientID     string    `json:"patient_id" db:"patient_id"`
	PatientName   string    `json:"patient_name" db:"patient_name"`
	DoctorID      string    `json:"doctor_id" db:"doctor_id"`
	DoctorName    string    `json:"doctor_name" db:"doctor_name"`
	AppointmentID string    `json:"appointment_id,omitempty" db:"appointment_id"`
	Diagnosis     string    `json:"diagnosis" db:"diagnosis"`
	Disease       string    `json:"disease,omitempty" db:"disease"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	TestResults   string    `json:"test_results,omitempty" db:"test_results"`
	Prescription  string    `json:"prescription,omitempty" db:"prescription"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
