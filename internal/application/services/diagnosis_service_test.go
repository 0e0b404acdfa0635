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

type diagnosisFixture struct {
	svc           *services.DiagnosisService
	diagnoses     *memory.DiagnosisAdapter
	notifications *memory.NotificationAdapter
}

func newDiagnosisFixture(t *testing.T) *diagnosisFixture {
	t.Helper()
	users := memory.NewUserAdapter()
	diagnoses := memory.NewDiagnosisAdapter()
	notifications := memory.NewNotificationAdapter()
	bus := events.NewLocalEventBus()
	t.Cleanup(func() { bus.Close() })

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

	notificationSvc := services.NewNotificationService(notifications, bus)
	return &diagnosisFixture{
		svc:           services.NewDiagnosisService(diagnoses, users, notificationSvc),
		diagnoses:     diagnoses,
		notifications: notifications,
	}
}

func TestDiagnosisService_Create_NotifiesPatient(t *testing.T) {
	ctx := context.Background()
	f := newDiagnosisFixture(t)

	diag, err := f.svc.Create(ctx, services.CreateDiagnosisInput{
		PatientID:    "pat-1",
		DoctorID:     "doc-1",
		Diagnosis:    "Hypertension Stage 1",
		Disease:      "Hypertension",
		Prescription: "Lisinopril 10mg",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", diag.PatientName)
	assert.Equal(t, "John Carter", diag.DoctorName)

	notifs, err := f.notifications.ListForUser(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "New Diagnosis", notifs[0].Title)
	assert.Equal(t, "Dr. John Carter has added a new diagnosis for you", notifs[0].Message)
	assert.Equal(t, entities.NotificationTypeDiagnosis, notifs[0].Type)
	assert.Equal(t, "/patient-dashboard?tab=diagnosis", notifs[0].Link)
}

func TestDiagnosisService_Create_SecondRecordAllowed(t *testing.T) {
	ctx := context.Background()
	f := newDiagnosisFixture(t)

	input := services.CreateDiagnosisInput{
		PatientID: "pat-1", DoctorID: "doc-1", Diagnosis: "Seasonal allergies",
	}
	first, err := f.svc.Create(ctx, input)
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	records, err := f.diagnoses.ListByPatient(ctx, "pat-1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestDiagnosisService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	f := newDiagnosisFixture(t)

	_, err := f.svc.Create(ctx, services.CreateDiagnosisInput{
		PatientID: "pat-1", DoctorID: "doc-1",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	// Roles are checked, not just existence.
	_, err = f.svc.Create(ctx, services.CreateDiagnosisInput{
		PatientID: "doc-1", DoctorID: "doc-1", Diagnosis: "x",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDiagnosisService_Update_NotifiesPatient(t *testing.T) {
	ctx := context.Background()
	f := newDiagnosisFixture(t)

	diag, err := f.svc.Create(ctx, services.CreateDiagnosisInput{
		PatientID: "pat-1", DoctorID: "doc-1", Diagnosis: "Hypertension Stage 1",
	})
	require.NoError(t, err)

	notes := "Recheck blood pressure in two weeks"
	updated, err := f.svc.Update(ctx, diag.ID, repositories.DiagnosisUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "Hypertension Stage 1", updated.Diagnosis)

	notifs, err := f.notifications.ListForUser(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, notifs, 2)

	var titles []string
	for _, n := range notifs {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "Diagnosis Updated")
}

func TestDiagnosisService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newDiagnosisFixture(t)

	notes := "x"
	_, err := f.svc.Update(ctx, "missing", repositories.DiagnosisUpdate{Notes: &notes})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDiagnosisService_ByPatient(t *testing.T) {
	ctx := context.Background()
	f := newDiagnosisFixture(t)

	diag, err := f.svc.ByPatient(ctx, "doc-1", "pat-1")
	require.NoError(t, err)
	assert.Nil(t, diag)

	created, err := f.svc.Create(ctx, services.CreateDiagnosisInput{
		PatientID: "pat-1", DoctorID: "doc-1", Diagnosis: "Hypertension Stage 1",
	})
	require.NoError(t, err)

	diag, err = f.svc.ByPatient(ctx, "doc-1", "pat-1")
	require.NoError(t, err)
	require.NotNil(t, diag)
	assert.Equal(t, created.ID, diag.ID)
}
