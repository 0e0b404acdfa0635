package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

var userColumns = []interface{}{
	"id", "email", "password_hash", "name", "role", "doctor_status",
	"specialization", "phone", "bio", "clinic_location",
	"created_at", "updated_at",
}

// UserAdapter implements the UserRepository interface on PostgreSQL
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":              user.ID,
		"email":           user.Email,
		"password_hash":   user.PasswordHash,
		"name":            user.Name,
		"role":            user.Role,
		"doctor_status":   nullString(string(user.DoctorStatus)),
		"specialization":  nullString(user.Specialization),
		"phone":           nullString(user.Phone),
		"bio":             nullString(user.Bio),
		"clinic_location": nullString(user.ClinicLocation),
		"created_at":      user.CreatedAt,
		"updated_at":      user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getWhere(ctx, goqu.Ex{"id": id})
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getWhere(ctx, goqu.Ex{"email": email})
}

// List retrieves all users
func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	return a.listWhere(ctx, nil)
}

// ListByRole retrieves all users with a given role
func (a *UserAdapter) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	return a.listWhere(ctx, goqu.Ex{"role": role})
}

// ListDoctorsByStatus retrieves doctors in a given approval state
func (a *UserAdapter) ListDoctorsByStatus(ctx context.Context, status entities.DoctorStatus) ([]*entities.User, error) {
	return a.listWhere(ctx, goqu.Ex{"role": entities.RoleDoctor, "doctor_status": status})
}

// Update merges the set fields of upd into the user
func (a *UserAdapter) Update(ctx context.Context, id string, upd repositories.UserUpdate) (*entities.User, error) {
	record := goqu.Record{"updated_at": time.Now()}
	if upd.Email != nil {
		record["email"] = *upd.Email
	}
	if upd.Name != nil {
		record["name"] = *upd.Name
	}
	if upd.DoctorStatus != nil {
		record["doctor_status"] = *upd.DoctorStatus
	}
	if upd.Specialization != nil {
		record["specialization"] = *upd.Specialization
	}
	if upd.Phone != nil {
		record["phone"] = *upd.Phone
	}
	if upd.Bio != nil {
		record["bio"] = *upd.Bio
	}
	if upd.ClinicLocation != nil {
		record["clinic_location"] = *upd.ClinicLocation
	}

	query, args, err := a.db.Update("users").Set(record).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	res, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	return a.GetByID(ctx, id)
}

// Delete removes a user
func (a *UserAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("users").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	res, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

func (a *UserAdapter) getWhere(ctx context.Context, where goqu.Ex) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).From("users").Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

func (a *UserAdapter) listWhere(ctx context.Context, where goqu.Ex) ([]*entities.User, error) {
	ds := a.db.Select(userColumns...).From("users").Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())
	if where != nil {
		ds = ds.Where(where)
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	var out []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		out = append(out, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var doctorStatus, specialization, phone, bio, clinicLocation sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&doctorStatus,
		&specialization,
		&phone,
		&bio,
		&clinicLocation,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.DoctorStatus = entities.DoctorStatus(doctorStatus.String)
	user.Specialization = specialization.String
	user.Phone = phone.String
	user.Bio = bio.String
	user.ClinicLocation = clinicLocation.String
	return user, nil
}

// nullString maps empty strings to NULL so optional columns stay clean
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
