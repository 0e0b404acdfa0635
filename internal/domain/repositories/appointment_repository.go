package repositories

import (
	"context"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create creates a new appointment
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// List retrieves all appointments ordered by date then time
	List(ctx context.Context) ([]*entities.Appointment, error)

	// ListByDoctor retrieves a doctor's appointments
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error)

	// ListByPatient retrieves a patient's appointments
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error)

	// ListByDoctorDate retrieves a doctor's appointments on one calendar day
	ListByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.Appointment, error)

	// Update merges the set fields of upd into the appointment and returns the result
	Update(ctx context.Context, id string, upd AppointmentUpdate) (*entities.Appointment, error)

	// DeleteByDoctor removes every appointment referencing a doctor
	DeleteByDoctor(ctx context.Context, doctorID string) error

	// Count returns the total number of appointments
	Count(ctx context.Context) (int, error)

	// CountByDoctor returns the number of appointments for a doctor
	CountByDoctor(ctx context.Context, doctorID string) (int, error)
}

// AppointmentUpdate carries a partial appointment update; nil fields are
// left untouched. Participant identity is immutable once booked, so it is
// absent here. Status transitions are unchecked.
type AppointmentUpdate struct {
	Date   *string
	Time   *string
	Status *entities.AppointmentStatus
	Notes  *string
	Reason *string
}
