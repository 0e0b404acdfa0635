package handlers

import (
	"context"
	"net/http"

	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
)

// AppointmentBooker is the surface of the appointment service the handler
// needs
type AppointmentBooker interface {
	Book(ctx context.Context, input services.BookInput) (*entities.Appointment, error)
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)
	ListForUser(ctx context.Context, userID string) ([]*entities.Appointment, error)
	Update(ctx context.Context, id string, upd repositories.AppointmentUpdate) (*entities.Appointment, error)
	AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error)
}

// AppointmentHandler handles appointment HTTP requests
type AppointmentHandler struct {
	appointments AppointmentBooker
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointments AppointmentBooker) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var input services.BookInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointments.Book(r.Context(), input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, appointment)
}

// GetAppointment handles GET /api/appointments/{id}
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointments.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}

// ListAppointments handles GET /api/users/{id}/appointments. Admins get
// every appointment, doctors and patients their own.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointments.ListForUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

type appointmentUpdateRequest struct {
	Date   *string                     `json:"date,omitempty"`
	Time   *string                     `json:"time,omitempty"`
	Status *entities.AppointmentStatus `json:"status,omitempty"`
	Notes  *string                     `json:"notes,omitempty"`
	Reason *string                     `json:"reason,omitempty"`
}

// UpdateAppointment handles PATCH /api/appointments/{id}
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointments.Update(r.Context(), r.PathValue("id"), repositories.AppointmentUpdate{
		Date:   req.Date,
		Time:   req.Time,
		Status: req.Status,
		Notes:  req.Notes,
		Reason: req.Reason,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}

// GetAvailableSlots handles GET /api/doctors/{id}/slots?date=YYYY-MM-DD
func (h *AppointmentHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "date is required")
		return
	}

	slots, err := h.appointments.AvailableSlots(r.Context(), r.PathValue("id"), date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"date":  date,
		"slots": slots,
	})
}
