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

var diagnosisColumns = []interface{}{
	"id", "patient_id", "patient_name", "doctor_id", "doctor_name",
	"appointment_id", "diagnosis", "disease", "notes", "test_results",
	"prescription", "created_at", "updated_at",
}

// DiagnosisAdapter implements the DiagnosisRepository interface on PostgreSQL
type DiagnosisAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDiagnosisAdapter creates a new diagnosis adapter
func NewDiagnosisAdapter(client *postgres.Client) repositories.DiagnosisRepository {
	return &DiagnosisAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new diagnosis record
func (a *DiagnosisAdapter) Create(ctx context.Context, diagnosis *entities.Diagnosis) error {
	record := goqu.Record{
		"id":             diagnosis.ID,
		"patient_id":     diagnosis.PatientID,
		"patient_name":   diagnosis.PatientName,
		"doctor_id":      diagnosis.DoctorID,
		"doctor_name":    diagnosis.DoctorName,
		"appointment_id": nullString(diagnosis.AppointmentID),
		"diagnosis":      diagnosis.Diagnosis,
		"disease":        nullString(diagnosis.Disease),
		"notes":          nullString(diagnosis.Notes),
		"test_results":   nullString(diagnosis.TestResults),
		"prescription":   nullString(diagnosis.Prescription),
		"created_at":     diagnosis.CreatedAt,
		"updated_at":     diagnosis.UpdatedAt,
	}

	query, args, err := a.db.Insert("diagnoses").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create diagnosis", err)
	}
	return nil
}

// GetByID retrieves a diagnosis by ID
func (a *DiagnosisAdapter) GetByID(ctx context.Context, id string) (*entities.Diagnosis, error) {
	query, args, err := a.db.Select(diagnosisColumns...).From("diagnoses").
		Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	d, err := scanDiagnosis(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("diagnosis not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get diagnosis", err)
	}
	return d, nil
}

// ListByPatient retrieves a patient's diagnoses, newest first
func (a *DiagnosisAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Diagnosis, error) {
	return a.listWhere(ctx, goqu.Ex{"patient_id": patientID})
}

// ListByDoctor retrieves a doctor's diagnoses, newest first
func (a *DiagnosisAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Diagnosis, error) {
	return a.listWhere(ctx, goqu.Ex{"doctor_id": doctorID})
}

// FindByDoctorPatient returns the first record for a doctor-patient pair,
// or nil when there is none
func (a *DiagnosisAdapter) FindByDoctorPatient(ctx context.Context, doctorID, patientID string) (*entities.Diagnosis, error) {
	query, args, err := a.db.Select(diagnosisColumns...).From("diagnoses").
		Where(goqu.Ex{"doctor_id": doctorID, "patient_id": patientID}).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	d, err := scanDiagnosis(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to find diagnosis", err)
	}
	return d, nil
}

// Update merges the set fields of upd into the record
func (a *DiagnosisAdapter) Update(ctx context.Context, id string, upd repositories.DiagnosisUpdate) (*entities.Diagnosis, error) {
	record := goqu.Record{"updated_at": time.Now()}
	if upd.Diagnosis != nil {
		record["diagnosis"] = *upd.Diagnosis
	}
	if upd.Disease != nil {
		record["disease"] = *upd.Disease
	}
	if upd.Notes != nil {
		record["notes"] = *upd.Notes
	}
	if upd.TestResults != nil {
		record["test_results"] = *upd.TestResults
	}
	if upd.Prescription != nil {
		record["prescription"] = *upd.Prescription
	}

	query, args, err := a.db.Update("diagnoses").Set(record).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	res, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update diagnosis", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperrors.NewNotFoundError("diagnosis not found")
	}

	return a.GetByID(ctx, id)
}

func (a *DiagnosisAdapter) listWhere(ctx context.Context, where goqu.Ex) ([]*entities.Diagnosis, error) {
	query, args, err := a.db.Select(diagnosisColumns...).From("diagnoses").
		Where(where).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list diagnoses", err)
	}
	defer rows.Close()

	var out []*entities.Diagnosis
	for rows.Next() {
		d, err := scanDiagnosis(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan diagnosis", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate diagnoses", err)
	}
	return out, nil
}

func scanDiagnosis(row rowScanner) (*entities.Diagnosis, error) {
	d := &entities.Diagnosis{}
	var appointmentID, disease, notes, testResults, prescription sql.NullString

	err := row.Scan(
		&d.ID,
		&d.PatientID,
		&d.PatientName,
		&d.DoctorID,
		&d.DoctorName,
		&appointmentID,
		&d.Diagnosis,
		&disease,
		&notes,
		&testResults,
		&prescription,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.AppointmentID = appointmentID.String
	d.Disease = disease.String
	d.Notes = notes.String
	d.TestResults = testResults.String
	d.Prescription = prescription.String
	return d, nil
}
