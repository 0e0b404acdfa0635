package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// StatisticsReader is the surface of the statistics service the handler
// needs
type StatisticsReader interface {
	Overview(ctx context.Context) (*entities.Statistics, error)
	PopularDoctors(ctx context.Context, limit int) ([]*entities.PopularDoctor, error)
}

// StatisticsHandler handles dashboard statistics requests
type StatisticsHandler struct {
	statistics StatisticsReader
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statistics StatisticsReader) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics}
}

// GetStatistics handles GET /api/statistics
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statistics.Overview(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// GetPopularDoctors handles GET /api/statistics/popular-doctors?limit=N
func (h *StatisticsHandler) GetPopularDoctors(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	doctors, err := h.statistics.PopularDoctors(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}
