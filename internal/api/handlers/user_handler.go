package handlers

import (
	"context"
	"net/http"

	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
)

// UserDirectory is the surface of the user service the handler needs
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	PendingDoctors(ctx context.Context) ([]*entities.User, error)
	ApprovedDoctors(ctx context.Context) ([]*entities.User, error)
	UpdateDoctorStatus(ctx context.Context, id string, status entities.DoctorStatus) (*entities.User, error)
	CreateDoctor(ctx context.Context, input services.CreateDoctorInput) (*entities.User, error)
	UpdateDoctor(ctx context.Context, id string, upd repositories.UserUpdate) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, upd repositories.UserUpdate) (*entities.User, error)
	DeleteDoctor(ctx context.Context, id string) error
	GetPatientByID(ctx context.Context, id string) (*entities.User, error)
	PatientsForDoctor(ctx context.Context, doctorID string) ([]*entities.User, error)
}

// UserHandler handles user-directory HTTP requests
type UserHandler struct {
	users UserDirectory
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserDirectory) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// userUpdateRequest carries a partial profile update
type userUpdateRequest struct {
	Email          *string `json:"email,omitempty"`
	Name           *string `json:"name,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	ClinicLocation *string `json:"clinic_location,omitempty"`
}

func (req *userUpdateRequest) toUpdate() repositories.UserUpdate {
	return repositories.UserUpdate{
		Email:          req.Email,
		Name:           req.Name,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		Bio:            req.Bio,
		ClinicLocation: req.ClinicLocation,
	}
}

// UpdateUser handles PATCH /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.UpdateUser(r.Context(), r.PathValue("id"), req.toUpdate())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// ListDoctors handles GET /api/doctors. Only approved doctors are visible
// here; the pending queue has its own endpoint.
func (h *UserHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.users.ApprovedDoctors(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// ListPendingDoctors handles GET /api/doctors/pending
func (h *UserHandler) ListPendingDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.users.PendingDoctors(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// CreateDoctor handles POST /api/doctors. Admin-created doctors start
// approved.
func (h *UserHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var input services.CreateDoctorInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doctor, err := h.users.CreateDoctor(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, doctor)
}

// UpdateDoctor handles PATCH /api/doctors/{id}
func (h *UserHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doctor, err := h.users.UpdateDoctor(r.Context(), r.PathValue("id"), req.toUpdate())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doctor)
}

type doctorStatusRequest struct {
	Status entities.DoctorStatus `json:"status"`
}

// UpdateDoctorStatus handles PATCH /api/doctors/{id}/status
func (h *UserHandler) UpdateDoctorStatus(w http.ResponseWriter, r *http.Request) {
	var req doctorStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doctor, err := h.users.UpdateDoctorStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doctor)
}

// DeleteDoctor handles DELETE /api/doctors/{id}. The doctor's appointments
// go with them.
func (h *UserHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteDoctor(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPatient handles GET /api/patients/{id}
func (h *UserHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.users.GetPatientByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patient)
}

// ListDoctorPatients handles GET /api/doctors/{id}/patients
func (h *UserHandler) ListDoctorPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.users.PatientsForDoctor(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}
