package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/adapters/memory"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

func TestUserAdapter_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	adapter := memory.NewUserAdapter()

	user := &entities.User{
		ID: "u-1", Email: "jane@example.com", Name: "Jane Smith",
		Role: entities.RolePatient, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, adapter.Create(ctx, user))

	err := adapter.Create(ctx, user)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))

	got, err := adapter.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)

	got, err = adapter.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)

	_, err = adapter.GetByEmail(ctx, "nobody@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserAdapter_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	adapter := memory.NewUserAdapter()

	require.NoError(t, adapter.Create(ctx, &entities.User{
		ID: "u-1", Email: "jane@example.com", Name: "Jane Smith",
		Role: entities.RolePatient,
	}))

	got, err := adapter.GetByID(ctx, "u-1")
	require.NoError(t, err)
	got.Name = "mutated"

	fresh, err := adapter.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", fresh.Name)
}

func TestUserAdapter_Update_MergesOnlySetFields(t *testing.T) {
	ctx := context.Background()
	adapter := memory.NewUserAdapter()

	require.NoError(t, adapter.Create(ctx, &entities.User{
		ID: "d-1", Email: "john@clinic.com", Name: "John Carter",
		Role: entities.RoleDoctor, DoctorStatus: entities.DoctorStatusPending,
		Specialization: "Cardiology",
	}))

	phone := "+1-555-0100"
	approved := entities.DoctorStatusApproved
	updated, err := adapter.Update(ctx, "d-1", repositories.UserUpdate{
		Phone:        &phone,
		DoctorStatus: &approved,
	})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, entities.DoctorStatusApproved, updated.DoctorStatus)
	assert.Equal(t, "Cardiology", updated.Specialization)
	assert.Equal(t, "John Carter", updated.Name)

	_, err = adapter.Update(ctx, "missing", repositories.UserUpdate{Phone: &phone})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserAdapter_ListDoctorsByStatus(t *testing.T) {
	ctx := context.Background()
	adapter := memory.NewUserAdapter()

	base := time.Now()
	fixtures := []struct {
		id     string
		role   entities.UserRole
		status entities.DoctorStatus
	}{
		{"d-1", entities.RoleDoctor, entities.DoctorStatusApproved},
		{"d-2", entities.RoleDoctor, entities.DoctorStatusPending},
		{"d-3", entities.RoleDoctor, entities.DoctorStatusApproved},
		{"p-1", entities.RolePatient, ""},
	}
	for i, fx := range fixtures {
		require.NoError(t, adapter.Create(ctx, &entities.User{
			ID: fx.id, Email: fx.id + "@example.com", Name: fx.id,
			Role: fx.role, DoctorStatus: fx.status,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	approved, err := adapter.ListDoctorsByStatus(ctx, entities.DoctorStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, "d-1", approved[0].ID)
	assert.Equal(t, "d-3", approved[1].ID)

	patients, err := adapter.ListByRole(ctx, entities.RolePatient)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p-1", patients[0].ID)
}

func TestUserAdapter_Delete(t *testing.T) {
	ctx := context.Background()
	adapter := memory.NewUserAdapter()

	require.NoError(t, adapter.Create(ctx, &entities.User{
		ID: "u-1", Email: "jane@example.com", Role: entities.RolePatient,
	}))
	require.NoError(t, adapter.Delete(ctx, "u-1"))

	_, err := adapter.GetByID(ctx, "u-1")
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(adapter.Delete(ctx, "u-1")))
}
