package repositories

import (
	"context"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// DiagnosisRepository defines the interface for diagnosis records
type DiagnosisRepository interface {
	// Create creates a new diagnosis record. No upsert: a second create
	// for the same doctor-patient pair yields a second record.
	Create(ctx context.Context, diagnosis *entities.Diagnosis) error

	// GetByID retrieves a diagnosis by ID
	GetByID(ctx context.Context, id string) (*entities.Diagnosis, error)

	// ListByPatient retrieves a patient's diagnoses, newest first
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Diagnosis, error)

	// ListByDoctor retrieves a doctor's diagnoses, newest first
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Diagnosis, error)

	// FindByDoctorPatient returns the first record for a doctor-patient
	// pair, or nil when there is none
	FindByDoctorPatient(ctx context.Context, doctorID, patientID string) (*entities.Diagnosis, error)

	// Update merges the set fields of upd into the record, bumps UpdatedAt
	// and returns the result
	Update(ctx context.Context, id string, upd DiagnosisUpdate) (*entities.Diagnosis, error)
}

// DiagnosisUpdate carries a partial diagnosis update; nil fields are left
// untouched.
type DiagnosisUpdate struct {
	Diagnosis    *string
	Disease      *string
	Notes        *string
	TestResults  *string
	Prescription *string
}
