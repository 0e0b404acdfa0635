package repositories

import (
	"context"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// UserRepository defines the interface for user directory operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*entities.User, error)

	// ListByRole retrieves all users with a given role
	ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error)

	// ListDoctorsByStatus retrieves doctors in a given approval state
	ListDoctorsByStatus(ctx context.Context, status entities.DoctorStatus) ([]*entities.User, error)

	// Update merges the set fields of upd into the user and returns the result
	Update(ctx context.Context, id string, upd UserUpdate) (*entities.User, error)

	// Delete removes a user
	Delete(ctx context.Context, id string) error
}

// UserUpdate carries a partial user update; nil fields are left untouched.
// Shallow-merge semantics: no uniqueness or format validation happens here.
type UserUpdate struct {
	Email          *string
	Name           *string
	DoctorStatus   *entities.DoctorStatus
	Specialization *string
	Phone          *string
	Bio            *string
	ClinicLocation *string
}
