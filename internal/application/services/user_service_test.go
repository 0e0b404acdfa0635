package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/adapters/memory"
	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

type userFixture struct {
	svc          *services.UserService
	users        *memory.UserAdapter
	appointments *memory.AppointmentAdapter
}

func newUserFixture() *userFixture {
	users := memory.NewUserAdapter()
	appointments := memory.NewAppointmentAdapter()
	return &userFixture{
		svc:          services.NewUserService(users, appointments),
		users:        users,
		appointments: appointments,
	}
}

func (f *userFixture) addUser(t *testing.T, id string, role entities.UserRole, status entities.DoctorStatus) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "x",
		Name:         "User " + id,
		Role:         role,
		DoctorStatus: status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func TestUserService_CreateDoctor_StartsApproved(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	doctor, err := f.svc.CreateDoctor(ctx, services.CreateDoctorInput{
		Email:          "sarah@clinic.com",
		Password:       "sarah123",
		Name:           "Sarah Miller",
		Specialization: "Pediatrics",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.RoleDoctor, doctor.Role)
	assert.Equal(t, entities.DoctorStatusApproved, doctor.DoctorStatus)
	assert.Empty(t, doctor.PasswordHash)

	approved, err := f.svc.ApprovedDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, doctor.ID, approved[0].ID)
}

func TestUserService_UpdateDoctorStatus(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.addUser(t, "doc-1", entities.RoleDoctor, entities.DoctorStatusPending)

	pending, err := f.svc.PendingDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	updated, err := f.svc.UpdateDoctorStatus(ctx, "doc-1", entities.DoctorStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entities.DoctorStatusApproved, updated.DoctorStatus)

	pending, err = f.svc.PendingDoctors(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = f.svc.UpdateDoctorStatus(ctx, "doc-1", entities.DoctorStatus("frozen"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestUserService_UpdateDoctorStatus_NotADoctor(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.addUser(t, "pat-1", entities.RolePatient, "")

	_, err := f.svc.UpdateDoctorStatus(ctx, "pat-1", entities.DoctorStatusApproved)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserService_DeleteDoctor_CascadesAppointments(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.addUser(t, "doc-1", entities.RoleDoctor, entities.DoctorStatusApproved)
	f.addUser(t, "pat-1", entities.RolePatient, "")

	for _, id := range []string{"apt-1", "apt-2"} {
		require.NoError(t, f.appointments.Create(ctx, &entities.Appointment{
			ID:        id,
			PatientID: "pat-1",
			DoctorID:  "doc-1",
			Date:      "2026-09-01",
			Time:      "09:00",
			Status:    entities.AppointmentStatusScheduled,
		}))
	}

	require.NoError(t, f.svc.DeleteDoctor(ctx, "doc-1"))

	_, err := f.users.GetByID(ctx, "doc-1")
	assert.True(t, apperrors.IsNotFound(err))

	remaining, err := f.appointments.ListByDoctor(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestUserService_GetPatientByID_WrongRole(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.addUser(t, "doc-1", entities.RoleDoctor, entities.DoctorStatusApproved)

	_, err := f.svc.GetPatientByID(ctx, "doc-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserService_PatientsForDoctor_DistinctInFirstAppointmentOrder(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	f.addUser(t, "doc-1", entities.RoleDoctor, entities.DoctorStatusApproved)
	f.addUser(t, "pat-1", entities.RolePatient, "")
	f.addUser(t, "pat-2", entities.RolePatient, "")

	fixtures := []struct {
		id, patient, date, time string
	}{
		{"apt-1", "pat-2", "2026-09-01", "09:00"},
		{"apt-2", "pat-1", "2026-09-01", "10:00"},
		{"apt-3", "pat-2", "2026-09-02", "09:00"},
		{"apt-4", "gone", "2026-09-02", "10:00"},
	}
	for _, fx := range fixtures {
		require.NoError(t, f.appointments.Create(ctx, &entities.Appointment{
			ID:        fx.id,
			PatientID: fx.patient,
			DoctorID:  "doc-1",
			Date:      fx.date,
			Time:      fx.time,
			Status:    entities.AppointmentStatusScheduled,
		}))
	}

	patients, err := f.svc.PatientsForDoctor(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "pat-2", patients[0].ID)
	assert.Equal(t, "pat-1", patients[1].ID)
}
