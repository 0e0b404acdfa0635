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

// DiagnosisAdapter implements DiagnosisRepository with an in-process map.
type DiagnosisAdapter struct {
	mu        sync.RWMutex
	diagnoses map[string]*entities.Diagnosis
}

// NewDiagnosisAdapter creates an empty in-memory diagnosis repository
func NewDiagnosisAdapter() *DiagnosisAdapter {
	return &DiagnosisAdapter{diagnoses: make(map[string]*entities.Diagnosis)}
}

// Create creates a new diagnosis record
func (a *DiagnosisAdapter) Create(ctx context.Context, diagnosis *entities.Diagnosis) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.diagnoses[diagnosis.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("diagnosis %s already exists", diagnosis.ID))
	}
	c := *diagnosis
	a.diagnoses[diagnosis.ID] = &c
	return nil
}

// GetByID retrieves a diagnosis by ID
func (a *DiagnosisAdapter) GetByID(ctx context.Context, id string) (*entities.Diagnosis, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	d, ok := a.diagnoses[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("diagnosis not found")
	}
	c := *d
	return &c, nil
}

// ListByPatient retrieves a patient's diagnoses, newest first
func (a *DiagnosisAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Diagnosis, error) {
	return a.listWhere(func(d *entities.Diagnosis) bool {
		return d.PatientID == patientID
	}), nil
}

// ListByDoctor retrieves a doctor's diagnoses, newest first
func (a *DiagnosisAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Diagnosis, error) {
	return a.listWhere(func(d *entities.Diagnosis) bool {
		return d.DoctorID == doctorID
	}), nil
}

// FindByDoctorPatient returns the first record for a doctor-patient pair,
// or nil when there is none
func (a *DiagnosisAdapter) FindByDoctorPatient(ctx context.Context, doctorID, patientID string) (*entities.Diagnosis, error) {
	matches := a.listWhere(func(d *entities.Diagnosis) bool {
		return d.DoctorID == doctorID && d.PatientID == patientID
	})
	if len(matches) == 0 {
		return nil, nil
	}
	// oldest record wins, matching first-match lookup semantics
	return matches[len(matches)-1], nil
}

// Update merges the set fields of upd into the record and bumps UpdatedAt
func (a *DiagnosisAdapter) Update(ctx context.Context, id string, upd repositories.DiagnosisUpdate) (*entities.Diagnosis, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, ok := a.diagnoses[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("diagnosis not found")
	}

	if upd.Diagnosis != nil {
		d.Diagnosis = *upd.Diagnosis
	}
	if upd.Disease != nil {
		d.Disease = *upd.Disease
	}
	if upd.Notes != nil {
		d.Notes = *upd.Notes
	}
	if upd.TestResults != nil {
		d.TestResults = *upd.TestResults
	}
	if upd.Prescription != nil {
		d.Prescription = *upd.Prescription
	}
	d.UpdatedAt = time.Now()

	c := *d
	return &c, nil
}

func (a *DiagnosisAdapter) listWhere(keep func(*entities.Diagnosis) bool) []*entities.Diagnosis {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.Diagnosis
	for _, d := range a.diagnoses {
		if keep(d) {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
