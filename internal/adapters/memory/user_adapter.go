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

// UserAdapter implements UserRepository with an in-process map. This is
// the faithful rendition of the original in-memory directory: state lives
// for the life of the process and is lost on restart.
type UserAdapter struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

// NewUserAdapter creates an empty in-memory user repository
func NewUserAdapter() *UserAdapter {
	return &UserAdapter{users: make(map[string]*entities.User)}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.users[user.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("user %s already exists", user.ID))
	}
	c := *user
	a.users[user.ID] = &c
	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	u, ok := a.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	c := *u
	return &c, nil
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, u := range a.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

// List retrieves all users
func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*entities.User, 0, len(a.users))
	for _, u := range a.users {
		c := *u
		out = append(out, &c)
	}
	sortUsers(out)
	return out, nil
}

// ListByRole retrieves all users with a given role
func (a *UserAdapter) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.User
	for _, u := range a.users {
		if u.Role == role {
			c := *u
			out = append(out, &c)
		}
	}
	sortUsers(out)
	return out, nil
}

// ListDoctorsByStatus retrieves doctors in a given approval state
func (a *UserAdapter) ListDoctorsByStatus(ctx context.Context, status entities.DoctorStatus) ([]*entities.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.User
	for _, u := range a.users {
		if u.Role == entities.RoleDoctor && u.DoctorStatus == status {
			c := *u
			out = append(out, &c)
		}
	}
	sortUsers(out)
	return out, nil
}

// Update merges the set fields of upd into the user
func (a *UserAdapter) Update(ctx context.Context, id string, upd repositories.UserUpdate) (*entities.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	u, ok := a.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.DoctorStatus != nil {
		u.DoctorStatus = *upd.DoctorStatus
	}
	if upd.Specialization != nil {
		u.Specialization = *upd.Specialization
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.ClinicLocation != nil {
		u.ClinicLocation = *upd.ClinicLocation
	}
	u.UpdatedAt = time.Now()

	c := *u
	return &c, nil
}

// Delete removes a user
func (a *UserAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.users[id]; !ok {
		return apperrors.NewNotFoundError("user not found")
	}
	delete(a.users, id)
	return nil
}

// sortUsers orders by creation time then ID so listings are stable
func sortUsers(users []*entities.User) {
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
}
