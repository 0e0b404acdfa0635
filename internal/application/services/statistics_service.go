package services

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/providers"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
)

const (
	statsOverviewCacheKey = "stats:overview"
	statsCacheTTLSeconds  = 60

	defaultPopularDoctorsLimit = 4
)

// StatisticsService computes advisory dashboard counts. Results pass
// through a short-TTL cache when one is configured; staleness is
// acceptable for this data.
type StatisticsService struct {
	users        repositories.UserRepository
	appointments repositories.AppointmentRepository
	cache        providers.CacheProvider
	metrics      *observability.Metrics
}

// NewStatisticsService creates a new statistics service. cache and metrics
// may be nil.
func NewStatisticsService(users repositories.UserRepository, appointments repositories.AppointmentRepository, cache providers.CacheProvider, metrics *observability.Metrics) *StatisticsService {
	return &StatisticsService{
		users:        users,
		appointments: appointments,
		cache:        cache,
		metrics:      metrics,
	}
}

// Overview returns the clinic-wide counts: all appointments, approved
// doctors, all patients
func (s *StatisticsService) Overview(ctx context.Context) (*entities.Statistics, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, statsOverviewCacheKey); err == nil {
			var stats entities.Statistics
			if err := json.Unmarshal(data, &stats); err == nil {
				observability.RecordCacheHit(ctx, s.metrics, statsOverviewCacheKey)
				return &stats, nil
			}
		}
		observability.RecordCacheMiss(ctx, s.metrics, statsOverviewCacheKey)
	}

	totalAppointments, err := s.appointments.Count(ctx)
	if err != nil {
		return nil, err
	}
	doctors, err := s.users.ListDoctorsByStatus(ctx, entities.DoctorStatusApproved)
	if err != nil {
		return nil, err
	}
	patients, err := s.users.ListByRole(ctx, entities.RolePatient)
	if err != nil {
		return nil, err
	}

	stats := &entities.Statistics{
		TotalAppointments: totalAppointments,
		TotalDoctors:      len(doctors),
		TotalPatients:     len(patients),
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsOverviewCacheKey, data, statsCacheTTLSeconds); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).
					Msg("failed to cache statistics")
			}
		}
	}

	return stats, nil
}

// PopularDoctors ranks approved doctors by appointment count. A limit of
// zero or less means the default of 4.
func (s *StatisticsService) PopularDoctors(ctx context.Context, limit int) ([]*entities.PopularDoctor, error) {
	if limit <= 0 {
		limit = defaultPopularDoctorsLimit
	}

	doctors, err := s.users.ListDoctorsByStatus(ctx, entities.DoctorStatusApproved)
	if err != nil {
		return nil, err
	}

	ranked := make([]*entities.PopularDoctor, 0, len(doctors))
	for _, doctor := range doctors {
		count, err := s.appointments.CountByDoctor(ctx, doctor.ID)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, &entities.PopularDoctor{
			User:             *doctor.Sanitized(),
			AppointmentCount: count,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AppointmentCount > ranked[j].AppointmentCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
