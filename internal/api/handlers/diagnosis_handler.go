package handlers

import (
	"context"
	"net/http"

	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
)

// DiagnosisRecorder is the surface of the diagnosis service the handler
// needs
type DiagnosisRecorder interface {
	Create(ctx context.Context, input services.CreateDiagnosisInput) (*entities.Diagnosis, error)
	Update(ctx context.Context, id string, upd repositories.DiagnosisUpdate) (*entities.Diagnosis, error)
	ListForUser(ctx context.Context, userID string) ([]*entities.Diagnosis, error)
	ByPatient(ctx context.Context, doctorID, patientID string) (*entities.Diagnosis, error)
}

// DiagnosisHandler handles diagnosis HTTP requests
type DiagnosisHandler struct {
	diagnoses DiagnosisRecorder
}

// NewDiagnosisHandler creates a new diagnosis handler
func NewDiagnosisHandler(diagnoses DiagnosisRecorder) *DiagnosisHandler {
	return &DiagnosisHandler{diagnoses: diagnoses}
}

// CreateDiagnosis handles POST /api/diagnoses
func (h *DiagnosisHandler) CreateDiagnosis(w http.ResponseWriter, r *http.Request) {
	var input services.CreateDiagnosisInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	diagnosis, err := h.diagnoses.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, diagnosis)
}

type diagnosisUpdateRequest struct {
	Diagnosis    *string `json:"diagnosis,omitempty"`
	Disease      *string `json:"disease,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	TestResults  *string `json:"test_results,omitempty"`
	Prescription *string `json:"prescription,omitempty"`
}

// UpdateDiagnosis handles PATCH /api/diagnoses/{id}
func (h *DiagnosisHandler) UpdateDiagnosis(w http.ResponseWriter, r *http.Request) {
	var req diagnosisUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	diagnosis, err := h.diagnoses.Update(r.Context(), r.PathValue("id"), repositories.DiagnosisUpdate{
		Diagnosis:    req.Diagnosis,
		Disease:      req.Disease,
		Notes:        req.Notes,
		TestResults:  req.TestResults,
		Prescription: req.Prescription,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, diagnosis)
}

// ListDiagnoses handles GET /api/users/{id}/diagnoses
func (h *DiagnosisHandler) ListDiagnoses(w http.ResponseWriter, r *http.Request) {
	diagnoses, err := h.diagnoses.ListForUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"diagnoses": diagnoses,
		"count":     len(diagnoses),
	})
}

// GetPatientDiagnosis handles
// GET /api/doctors/{id}/patients/{patientId}/diagnosis: the first record
// for the pair, or 404 when there is none
func (h *DiagnosisHandler) GetPatientDiagnosis(w http.ResponseWriter, r *http.Request) {
	diagnosis, err := h.diagnoses.ByPatient(r.Context(), r.PathValue("id"), r.PathValue("patientId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if diagnosis == nil {
		respondWithError(w, http.StatusNotFound, "diagnosis not found")
		return
	}
	respondWithJSON(w, http.StatusOK, diagnosis)
}
