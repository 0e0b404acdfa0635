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

var appointmentColumns = []interface{}{
	"id", "patient_id", "patient_name", "doctor_id", "doctor_name",
	"visit_date", "visit_time", "status", "notes", "reason",
	"created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface on
// PostgreSQL
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":           appointment.ID,
		"patient_id":   appointment.PatientID,
		"patient_name": appointment.PatientName,
		"doctor_id":    appointment.DoctorID,
		"doctor_name":  appointment.DoctorName,
		"visit_date":   appointment.Date,
		"visit_time":   appointment.Time,
		"status":       appointment.Status,
		"notes":        nullString(appointment.Notes),
		"reason":       nullString(appointment.Reason),
		"created_at":   appointment.CreatedAt,
		"updated_at":   appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).From("appointments").
		Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	apt, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}
	return apt, nil
}

// List retrieves all appointments ordered by date then time
func (a *AppointmentAdapter) List(ctx context.Context) ([]*entities.Appointment, error) {
	return a.listWhere(ctx, nil)
}

// ListByDoctor retrieves a doctor's appointments
func (a *AppointmentAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error) {
	return a.listWhere(ctx, goqu.Ex{"doctor_id": doctorID})
}

// ListByPatient retrieves a patient's appointments
func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error) {
	return a.listWhere(ctx, goqu.Ex{"patient_id": patientID})
}

// ListByDoctorDate retrieves a doctor's appointments on one calendar day
func (a *AppointmentAdapter) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.Appointment, error) {
	return a.listWhere(ctx, goqu.Ex{"doctor_id": doctorID, "visit_date": date})
}

// Update merges the set fields of upd into the appointment
func (a *AppointmentAdapter) Update(ctx context.Context, id string, upd repositories.AppointmentUpdate) (*entities.Appointment, error) {
	record := goqu.Record{"updated_at": time.Now()}
	if upd.Date != nil {
		record["visit_date"] = *upd.Date
	}
	if upd.Time != nil {
		record["visit_time"] = *upd.Time
	}
	if upd.Status != nil {
		record["status"] = *upd.Status
	}
	if upd.Notes != nil {
		record["notes"] = *upd.Notes
	}
	if upd.Reason != nil {
		record["reason"] = *upd.Reason
	}

	query, args, err := a.db.Update("appointments").Set(record).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	res, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update appointment", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}

	return a.GetByID(ctx, id)
}

// DeleteByDoctor removes every appointment referencing a doctor
func (a *AppointmentAdapter) DeleteByDoctor(ctx context.Context, doctorID string) error {
	query, args, err := a.db.Delete("appointments").Where(goqu.Ex{"doctor_id": doctorID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete appointments", err)
	}
	return nil
}

// Count returns the total number of appointments
func (a *AppointmentAdapter) Count(ctx context.Context) (int, error) {
	return a.countWhere(ctx, nil)
}

// CountByDoctor returns the number of appointments for a doctor
func (a *AppointmentAdapter) CountByDoctor(ctx context.Context, doctorID string) (int, error) {
	return a.countWhere(ctx, goqu.Ex{"doctor_id": doctorID})
}

func (a *AppointmentAdapter) countWhere(ctx context.Context, where goqu.Ex) (int, error) {
	ds := a.db.Select(goqu.COUNT("*")).From("appointments")
	if where != nil {
		ds = ds.Where(where)
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var n int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperrors.NewInternalError("failed to count appointments", err)
	}
	return n, nil
}

func (a *AppointmentAdapter) listWhere(ctx context.Context, where goqu.Ex) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).From("appointments").
		Order(goqu.I("visit_date").Asc(), goqu.I("visit_time").Asc(), goqu.I("id").Asc())
	if where != nil {
		ds = ds.Where(where)
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var out []*entities.Appointment
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		out = append(out, apt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate appointments", err)
	}
	return out, nil
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	apt := &entities.Appointment{}
	var notes, reason sql.NullString

	err := row.Scan(
		&apt.ID,
		&apt.PatientID,
		&apt.PatientName,
		&apt.DoctorID,
		&apt.DoctorName,
		&apt.Date,
		&apt.Time,
		&apt.Status,
		&notes,
		&reason,
		&apt.CreatedAt,
		&apt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	apt.Notes = notes.String
	apt.Reason = reason.String
	return apt, nil
}
