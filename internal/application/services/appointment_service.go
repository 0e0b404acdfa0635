package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/providers"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

// Working hours for the advisory slot grid: half-hour slots from 09:00 up
// to and including 16:30.
const (
	slotGridStartHour = 9
	slotGridEndHour   = 17
)

// AppointmentService handles booking and appointment lifecycle
type AppointmentService struct {
	appointments repositories.AppointmentRepository
	users        repositories.UserRepository
	bus          providers.EventBus
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(appointments repositories.AppointmentRepository, users repositories.UserRepository, bus providers.EventBus) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		bus:          bus,
	}
}

// BookInput carries a booking request
type BookInput struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Book creates a scheduled appointment. Participant names are snapshotted
// at booking time. Nothing stops two bookings from landing on the same
// slot; the slot grid is advisory.
func (s *AppointmentService) Book(ctx context.Context, input BookInput) (*entities.Appointment, error) {
	if input.PatientID == "" || input.DoctorID == "" || input.Date == "" || input.Time == "" {
		return nil, apperrors.NewValidationError("patient, doctor, date and time are required")
	}

	patient, err := s.users.GetByID(ctx, input.PatientID)
	if err != nil || patient.Role != entities.RolePatient {
		return nil, apperrors.NewNotFoundError("patient not found")
	}

	doctor, err := s.users.GetByID(ctx, input.DoctorID)
	if err != nil || doctor.Role != entities.RoleDoctor {
		return nil, apperrors.NewNotFoundError("doctor not found")
	}

	now := time.Now()
	appointment := &entities.Appointment{
		ID:          uuid.New().String(),
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Date:        input.Date,
		Time:        input.Time,
		Status:      entities.AppointmentStatusScheduled,
		Reason:      input.Reason,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"appointment_id": appointment.ID,
		"date":           appointment.Date,
		"time":           appointment.Time,
	}
	s.publish(ctx, appointment.DoctorID, entities.ClinicEventAppointmentBooked, payload)
	s.publish(ctx, appointment.PatientID, entities.ClinicEventAppointmentBooked, payload)

	return appointment, nil
}

// GetByID retrieves an appointment
func (s *AppointmentService) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// ListForUser retrieves the appointments visible to a user: admins see all,
// doctors and patients see their own
func (s *AppointmentService) ListForUser(ctx context.Context, userID string) ([]*entities.Appointment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case entities.RoleAdmin:
		return s.appointments.List(ctx)
	case entities.RoleDoctor:
		return s.appointments.ListByDoctor(ctx, userID)
	default:
		return s.appointments.ListByPatient(ctx, userID)
	}
}

// Update merges a partial update into an appointment. Status transitions
// are unchecked: a cancelled appointment can be rescheduled back to
// scheduled.
func (s *AppointmentService) Update(ctx context.Context, id string, upd repositories.AppointmentUpdate) (*entities.Appointment, error) {
	if upd.Status != nil && !upd.Status.IsValid() {
		return nil, apperrors.NewValidationError("invalid appointment status")
	}

	appointment, err := s.appointments.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"appointment_id": appointment.ID,
		"status":         string(appointment.Status),
	}
	s.publish(ctx, appointment.DoctorID, entities.ClinicEventAppointmentUpdated, payload)
	s.publish(ctx, appointment.PatientID, entities.ClinicEventAppointmentUpdated, payload)

	return appointment, nil
}

// AvailableSlots returns the half-hour grid for a doctor on a date, minus
// the slots already holding a scheduled appointment. Advisory only: booking
// does not consult it.
func (s *AppointmentService) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	appointments, err := s.appointments.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool)
	for _, apt := range appointments {
		if apt.Status == entities.AppointmentStatusScheduled {
			taken[apt.Time] = true
		}
	}

	slots := make([]string, 0, (slotGridEndHour-slotGridStartHour)*2)
	for hour := slotGridStartHour; hour < slotGridEndHour; hour++ {
		for _, minute := range []int{0, 30} {
			slot := fmt.Sprintf("%02d:%02d", hour, minute)
			if !taken[slot] {
				slots = append(slots, slot)
			}
		}
	}
	return slots, nil
}

func (s *AppointmentService) publish(ctx context.Context, userID string, eventType entities.ClinicEventType, payload map[string]interface{}) {
	event := entities.NewClinicEvent(userID, eventType, payload)
	if err := s.bus.Publish(ctx, providers.GetUserChannel(userID), event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("user_id", userID).Msg("failed to publish event")
	}
}
