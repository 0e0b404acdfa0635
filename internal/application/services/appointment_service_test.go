package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/adapters/events"
	"github.com/clinicore/clinic-backend/internal/adapters/memory"
	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

type appointmentFixture struct {
	svc          *services.AppointmentService
	users        *memory.UserAdapter
	appointments *memory.AppointmentAdapter
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	users := memory.NewUserAdapter()
	appointments := memory.NewAppointmentAdapter()
	bus := events.NewLocalEventBus()
	t.Cleanup(func() { bus.Close() })

	f := &appointmentFixture{
		svc:          services.NewAppointmentService(appointments, users, bus),
		users:        users,
		appointments: appointments,
	}

	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entities.User{
		ID: "doc-1", Email: "doc@example.com", Name: "John Carter",
		Role: entities.RoleDoctor, DoctorStatus: entities.DoctorStatusApproved,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	require.NoError(t, users.Create(ctx, &entities.User{
		ID: "pat-1", Email: "pat@example.com", Name: "Jane Smith",
		Role: entities.RolePatient,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return f
}

func TestAppointmentService_Book_SnapshotsNames(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)

	apt, err := f.svc.Book(ctx, services.BookInput{
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		Date:      "2026-09-01",
		Time:      "10:00",
		Reason:    "Checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", apt.PatientName)
	assert.Equal(t, "John Carter", apt.DoctorName)
	assert.Equal(t, entities.AppointmentStatusScheduled, apt.Status)

	// Renaming the doctor must not rewrite the snapshot.
	newName := "John A. Carter"
	_, err = f.users.Update(ctx, "doc-1", repositories.UserUpdate{Name: &newName})
	require.NoError(t, err)

	stored, err := f.svc.GetByID(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Carter", stored.DoctorName)
}

func TestAppointmentService_Book_Validation(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)

	_, err := f.svc.Book(ctx, services.BookInput{PatientID: "pat-1", DoctorID: "doc-1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	_, err = f.svc.Book(ctx, services.BookInput{
		PatientID: "doc-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAppointmentService_Book_DoubleBookingAllowed(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)

	input := services.BookInput{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00",
	}
	_, err := f.svc.Book(ctx, input)
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, input)
	require.NoError(t, err)

	all, err := f.appointments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAppointmentService_ListForUser_ByRole(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)
	require.NoError(t, f.users.Create(ctx, &entities.User{
		ID: "adm-1", Email: "admin@example.com", Name: "Admin",
		Role: entities.RoleAdmin, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	require.NoError(t, f.users.Create(ctx, &entities.User{
		ID: "pat-2", Email: "pat2@example.com", Name: "Robert Brown",
		Role: entities.RolePatient, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	_, err := f.svc.Book(ctx, services.BookInput{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "09:00",
	})
	require.NoError(t, err)
	_, err = f.svc.Book(ctx, services.BookInput{
		PatientID: "pat-2", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	forAdmin, err := f.svc.ListForUser(ctx, "adm-1")
	require.NoError(t, err)
	assert.Len(t, forAdmin, 2)

	forDoctor, err := f.svc.ListForUser(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, forDoctor, 2)

	forPatient, err := f.svc.ListForUser(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, forPatient, 1)
	assert.Equal(t, "pat-1", forPatient[0].PatientID)
}

func TestAppointmentService_Update_StatusRoundTrips(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)

	apt, err := f.svc.Book(ctx, services.BookInput{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	cancelled := entities.AppointmentStatusCancelled
	updated, err := f.svc.Update(ctx, apt.ID, repositories.AppointmentUpdate{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, entities.AppointmentStatusCancelled, updated.Status)

	// A cancelled appointment can go straight back to scheduled.
	scheduled := entities.AppointmentStatusScheduled
	updated, err = f.svc.Update(ctx, apt.ID, repositories.AppointmentUpdate{Status: &scheduled})
	require.NoError(t, err)
	assert.Equal(t, entities.AppointmentStatusScheduled, updated.Status)

	bogus := entities.AppointmentStatus("paused")
	_, err = f.svc.Update(ctx, apt.ID, repositories.AppointmentUpdate{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestAppointmentService_AvailableSlots(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)

	slots, err := f.svc.AvailableSlots(ctx, "doc-1", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:30", slots[15])

	_, err = f.svc.Book(ctx, services.BookInput{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	cancelledApt, err := f.svc.Book(ctx, services.BookInput{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "11:00",
	})
	require.NoError(t, err)
	cancelled := entities.AppointmentStatusCancelled
	_, err = f.svc.Update(ctx, cancelledApt.ID, repositories.AppointmentUpdate{Status: &cancelled})
	require.NoError(t, err)

	slots, err = f.svc.AvailableSlots(ctx, "doc-1", "2026-09-01")
	require.NoError(t, err)
	assert.Len(t, slots, 15)
	assert.NotContains(t, slots, "10:00")
	// Cancelled appointments free their slot.
	assert.Contains(t, slots, "11:00")
}
