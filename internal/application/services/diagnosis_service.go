package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

const diagnosisNotificationLink = "/patient-dashboard?tab=diagnosis"

// DiagnosisService handles clinical diagnosis records
type DiagnosisService struct {
	diagnoses     repositories.DiagnosisRepository
	users         repositories.UserRepository
	notifications *NotificationService
}

// NewDiagnosisService creates a new diagnosis service
func NewDiagnosisService(diagnoses repositories.DiagnosisRepository, users repositories.UserRepository, notifications *NotificationService) *DiagnosisService {
	return &DiagnosisService{
		diagnoses:     diagnoses,
		users:         users,
		notifications: notifications,
	}
}

// CreateDiagnosisInput carries a new diagnosis record
type CreateDiagnosisInput struct {
	PatientID     string `json:"patient_id"`
	DoctorID      string `json:"doctor_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Diagnosis     string `json:"diagnosis"`
	Disease       string `json:"disease,omitempty"`
	Notes         string `json:"notes,omitempty"`
	TestResults   string `json:"test_results,omitempty"`
	Prescription  string `json:"prescription,omitempty"`
}

// Create records a diagnosis and notifies the patient. A second create for
// the same doctor-patient pair adds a second record; there is no upsert.
func (s *DiagnosisService) Create(ctx context.Context, input CreateDiagnosisInput) (*entities.Diagnosis, error) {
	if input.Diagnosis == "" {
		return nil, apperrors.NewValidationError("diagnosis text is required")
	}

	doctor, err := s.users.GetByID(ctx, input.DoctorID)
	if err != nil || doctor.Role != entities.RoleDoctor {
		return nil, apperrors.NewNotFoundError("doctor not found")
	}
	patient, err := s.users.GetByID(ctx, input.PatientID)
	if err != nil || patient.Role != entities.RolePatient {
		return nil, apperrors.NewNotFoundError("patient not found")
	}

	now := time.Now()
	diagnosis := &entities.Diagnosis{
		ID:            uuid.New().String(),
		PatientID:     patient.ID,
		PatientName:   patient.Name,
		DoctorID:      doctor.ID,
		DoctorName:    doctor.Name,
		AppointmentID: input.AppointmentID,
		Diagnosis:     input.Diagnosis,
		Disease:       input.Disease,
		Notes:         input.Notes,
		TestResults:   input.TestResults,
		Prescription:  input.Prescription,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.diagnoses.Create(ctx, diagnosis); err != nil {
		return nil, err
	}

	s.notifyPatient(ctx, patient.ID, "New Diagnosis",
		fmt.Sprintf("Dr. %s has added a new diagnosis for you", doctor.Name))

	return diagnosis, nil
}

// Update merges a partial update into a diagnosis record and notifies the
// patient
func (s *DiagnosisService) Update(ctx context.Context, id string, upd repositories.DiagnosisUpdate) (*entities.Diagnosis, error) {
	diagnosis, err := s.diagnoses.Update(ctx, id, upd)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("diagnosis not found")
		}
		return nil, err
	}

	s.notifyPatient(ctx, diagnosis.PatientID, "Diagnosis Updated",
		fmt.Sprintf("Dr. %s has updated your diagnosis", diagnosis.DoctorName))

	return diagnosis, nil
}

// ListForUser retrieves the diagnosis records visible to a user: doctors
// see the ones they wrote, everyone else sees their own patient records
func (s *DiagnosisService) ListForUser(ctx context.Context, userID string) ([]*entities.Diagnosis, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == entities.RoleDoctor {
		return s.diagnoses.ListByDoctor(ctx, userID)
	}
	return s.diagnoses.ListByPatient(ctx, userID)
}

// ByPatient retrieves the first diagnosis record for a doctor-patient
// pair, or nil when none exists
func (s *DiagnosisService) ByPatient(ctx context.Context, doctorID, patientID string) (*entities.Diagnosis, error) {
	return s.diagnoses.FindByDoctorPatient(ctx, doctorID, patientID)
}

func (s *DiagnosisService) notifyPatient(ctx context.Context, patientID, title, message string) {
	if _, err := s.notifications.Create(ctx, patientID, title, message,
		entities.NotificationTypeDiagnosis, diagnosisNotificationLink); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("patient_id", patientID).Msg("failed to create diagnosis notification")
	}
}
