package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

// AppointmentAdapter implements AppointmentRepository with an in-process
// map keyed by appointment ID.
type AppointmentAdapter struct {
	mu           sync.RWMutex
	appointments map[string]*entities.Appointment
}

// NewAppointmentAdapter creates an empty in-memory appointment repository
func NewAppointmentAdapter() *AppointmentAdapter {
	return &AppointmentAdapter{appointments: make(map[string]*entities.Appointment)}
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.appointments[appointment.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("appointment %s already exists", appointment.ID))
	}
	c := *appointment
	a.appointments[appointment.ID] = &c
	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	apt, ok := a.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}
	c := *apt
	return &c, nil
}

// List retrieves all appointments ordered by date then time
func (a *AppointmentAdapter) List(ctx context.Context) ([]*entities.Appointment, error) {
	return a.listWhere(func(*entities.Appointment) bool { return true }), nil
}

// ListByDoctor retrieves a doctor's appointments
func (a *AppointmentAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	return a.listWhere(func(apt *entities.Appointment) bool {
		return apt.DoctorID == doctorID
	}), nil
}

// ListByPatient retrieves a patient's appointments
func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	return a.listWhere(func(apt *entities.Appointment) bool {
		return apt.PatientID == patientID
	}), nil
}

// ListByDoctorDate retrieves a doctor's appointments on one calendar day
func (a *AppointmentAdapter) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.Appointment, error) {
	return a.listWhere(func(apt *entities.Appointment) bool {
		return apt.DoctorID == doctorID && apt.Date == date
	}), nil
}

// Update merges the set fields of upd into the appointment
func (a *AppointmentAdapter) Update(ctx context.Context, id string, upd repositories.AppointmentUpdate) (*entities.Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	apt, ok := a.appointments[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}

	if upd.Date != nil {
		apt.Date = *upd.Date
	}
	if upd.Time != nil {
		apt.Time = *upd.Time
	}
	if upd.Status != nil {
		apt.Status = *upd.Status
	}
	if upd.Notes != nil {
		apt.Notes = *upd.Notes
	}
	if upd.Reason != nil {
		apt.Reason = *upd.Reason
	}
	apt.UpdatedAt = time.Now()

	c := *apt
	return &c, nil
}

// DeleteByDoctor removes every appointment referencing a doctor
func (a *AppointmentAdapter) DeleteByDoctor(ctx context.Context, doctorID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, apt := range a.appointments {
		if apt.DoctorID == doctorID {
			delete(a.appointments, id)
		}
	}
	return nil
}

// Count returns the total number of appointments
func (a *AppointmentAdapter) Count(ctx context.Context) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.appointments), nil
}

// CountByDoctor returns the number of appointments for a doctor
func (a *AppointmentAdapter) CountByDoctor(ctx context.Context, doctorID string) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := 0
	for _, apt := range a.appointments {
		if apt.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}

func (a *AppointmentAdapter) listWhere(keep func(*entities.Appointment) bool) []*entities.Appointment {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.Appointment
	for _, apt := range a.appointments {
		if keep(apt) {
			c := *apt
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}
