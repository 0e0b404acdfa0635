package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/adapters/memory"
	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

func seedStatisticsData(t *testing.T, users *memory.UserAdapter, appointments *memory.AppointmentAdapter) {
	t.Helper()
	ctx := context.Background()

	doctors := []struct {
		id     string
		status entities.DoctorStatus
	}{
		{"doc-1", entities.DoctorStatusApproved},
		{"doc-2", entities.DoctorStatusApproved},
		{"doc-3", entities.DoctorStatusPending},
	}
	base := time.Now()
	for i, d := range doctors {
		require.NoError(t, users.Create(ctx, &entities.User{
			ID: d.id, Email: d.id + "@example.com", Name: "Doctor " + d.id,
			Role: entities.RoleDoctor, DoctorStatus: d.status,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base,
		}))
	}
	for _, id := range []string{"pat-1", "pat-2"} {
		require.NoError(t, users.Create(ctx, &entities.User{
			ID: id, Email: id + "@example.com", Name: "Patient " + id,
			Role: entities.RolePatient, CreatedAt: base, UpdatedAt: base,
		}))
	}

	// doc-2 is the busier doctor: three appointments to doc-1's one.
	counts := map[string]int{"doc-1": 1, "doc-2": 3}
	n := 0
	for doctorID, count := range counts {
		for i := 0; i < count; i++ {
			n++
			require.NoError(t, appointments.Create(ctx, &entities.Appointment{
				ID:        fmt.Sprintf("apt-%d", n),
				PatientID: "pat-1",
				DoctorID:  doctorID,
				Date:      "2026-09-01",
				Time:      fmt.Sprintf("%02d:00", 9+n),
				Status:    entities.AppointmentStatusScheduled,
			}))
		}
	}
}

func TestStatisticsService_Overview(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserAdapter()
	appointments := memory.NewAppointmentAdapter()
	seedStatisticsData(t, users, appointments)

	svc := services.NewStatisticsService(users, appointments, nil, nil)

	stats, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalAppointments)
	// Pending doctors are not counted.
	assert.Equal(t, 2, stats.TotalDoctors)
	assert.Equal(t, 2, stats.TotalPatients)
}

func TestStatisticsService_PopularDoctors_RankedByVolume(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserAdapter()
	appointments := memory.NewAppointmentAdapter()
	seedStatisticsData(t, users, appointments)

	svc := services.NewStatisticsService(users, appointments, nil, nil)

	ranked, err := svc.PopularDoctors(ctx, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "doc-2", ranked[0].ID)
	assert.Equal(t, 3, ranked[0].AppointmentCount)
	assert.Equal(t, "doc-1", ranked[1].ID)
	assert.Equal(t, 1, ranked[1].AppointmentCount)
	assert.Empty(t, ranked[0].PasswordHash)
}

func TestStatisticsService_PopularDoctors_Limit(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserAdapter()
	appointments := memory.NewAppointmentAdapter()
	seedStatisticsData(t, users, appointments)

	svc := services.NewStatisticsService(users, appointments, nil, nil)

	ranked, err := svc.PopularDoctors(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "doc-2", ranked[0].ID)
}
