package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/auth"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

// UserService handles the user directory: listing, profile updates and the
// doctor approval workflow
type UserService struct {
	users        repositories.UserRepository
	appointments repositories.AppointmentRepository
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, appointments repositories.AppointmentRepository) *UserService {
	return &UserService{
		users:        users,
		appointments: appointments,
	}
}

// GetByID retrieves a user with credentials stripped
func (s *UserService) GetByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// List retrieves all users
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeAll(users), nil
}

// PendingDoctors retrieves doctors awaiting approval
func (s *UserService) PendingDoctors(ctx context.Context) ([]*entities.User, error) {
	doctors, err := s.users.ListDoctorsByStatus(ctx, entities.DoctorStatusPending)
	if err != nil {
		return nil, err
	}
	return sanitizeAll(doctors), nil
}

// ApprovedDoctors retrieves doctors visible to patients
func (s *UserService) ApprovedDoctors(ctx context.Context) ([]*entities.User, error) {
	doctors, err := s.users.ListDoctorsByStatus(ctx, entities.DoctorStatusApproved)
	if err != nil {
		return nil, err
	}
	return sanitizeAll(doctors), nil
}

// UpdateDoctorStatus moves a doctor through the approval workflow
func (s *UserService) UpdateDoctorStatus(ctx context.Context, id string, status entities.DoctorStatus) (*entities.User, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid doctor status")
	}

	if err := s.requireDoctor(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, id, repositories.UserUpdate{DoctorStatus: &status})
	if err != nil {
		return nil, err
	}
	return updated.Sanitized(), nil
}

// CreateDoctorInput carries an admin-created doctor account
type CreateDoctorInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Bio            string `json:"bio,omitempty"`
	ClinicLocation string `json:"clinic_location,omitempty"`
}

// CreateDoctor creates a doctor account that starts approved. Used by the
// admin directory; self-registered doctors go through Register instead.
func (s *UserService) CreateDoctor(ctx context.Context, input CreateDoctorInput) (*entities.User, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, apperrors.NewValidationError("email, password and name are required")
	}

	if existing, err := s.users.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("user already exists")
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	doctor := &entities.User{
		ID:             uuid.New().String(),
		Email:          input.Email,
		PasswordHash:   hash,
		Name:           input.Name,
		Role:           entities.RoleDoctor,
		DoctorStatus:   entities.DoctorStatusApproved,
		Specialization: input.Specialization,
		Phone:          input.Phone,
		Bio:            input.Bio,
		ClinicLocation: input.ClinicLocation,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor.Sanitized(), nil
}

// UpdateDoctor merges a partial profile update into a doctor. Denormalized
// names on existing appointments, messages and diagnoses are snapshots and
// stay as they were.
func (s *UserService) UpdateDoctor(ctx context.Context, id string, upd repositories.UserUpdate) (*entities.User, error) {
	if err := s.requireDoctor(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	return updated.Sanitized(), nil
}

// UpdateUser merges a partial profile update into any user. Shallow merge,
// no uniqueness or format checks.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd repositories.UserUpdate) (*entities.User, error) {
	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	return updated.Sanitized(), nil
}

// DeleteDoctor removes a doctor and cascades deletion of their appointments
func (s *UserService) DeleteDoctor(ctx context.Context, id string) error {
	if err := s.requireDoctor(ctx, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	return s.appointments.DeleteByDoctor(ctx, id)
}

// GetPatientByID retrieves a patient profile
func (s *UserService) GetPatientByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil || user.Role != entities.RolePatient {
		return nil, apperrors.NewNotFoundError("patient not found")
	}
	return user.Sanitized(), nil
}

// PatientsForDoctor retrieves the distinct patients appearing in a doctor's
// appointments, in order of first appointment
func (s *UserService) PatientsForDoctor(ctx context.Context, doctorID string) ([]*entities.User, error) {
	appointments, err := s.appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var patients []*entities.User
	for _, apt := range appointments {
		if seen[apt.PatientID] {
			continue
		}
		seen[apt.PatientID] = true

		patient, err := s.users.GetByID(ctx, apt.PatientID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		patients = append(patients, patient.Sanitized())
	}
	return patients, nil
}

// requireDoctor fails with "doctor not found" when the id is absent or does
// not belong to a doctor
func (s *UserService) requireDoctor(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil || user.Role != entities.RoleDoctor {
		return apperrors.NewNotFoundError("doctor not found")
	}
	return nil
}

func sanitizeAll(users []*entities.User) []*entities.User {
	out := make([]*entities.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out
}
