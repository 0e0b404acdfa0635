package routes

import (
	"net/http"

	"github.com/clinicore/clinic-backend/internal/api/handlers"
	"github.com/clinicore/clinic-backend/internal/api/middleware"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
)

// Router wires handlers to routes and stacks the middleware
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	appointmentHandler  *handlers.AppointmentHandler
	messageHandler      *handlers.MessageHandler
	notificationHandler *handlers.NotificationHandler
	diagnosisHandler    *handlers.DiagnosisHandler
	statisticsHandler   *handlers.StatisticsHandler

	tokenParser     middleware.TokenParser
	authRateLimiter *middleware.RateLimiter
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	appointmentHandler *handlers.AppointmentHandler,
	messageHandler *handlers.MessageHandler,
	notificationHandler *handlers.NotificationHandler,
	diagnosisHandler *handlers.DiagnosisHandler,
	statisticsHandler *handlers.StatisticsHandler,
	tokenParser middleware.TokenParser,
	authRateLimiter *middleware.RateLimiter,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		authHandler:         authHandler,
		userHandler:         userHandler,
		appointmentHandler:  appointmentHandler,
		messageHandler:      messageHandler,
		notificationHandler: notificationHandler,
		diagnosisHandler:    diagnosisHandler,
		statisticsHandler:   statisticsHandler,
		tokenParser:         tokenParser,
		authRateLimiter:     authRateLimiter,
		cacheMiddleware:     cacheMiddleware,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	authed := middleware.RequireAuth(r.tokenParser)
	adminOnly := middleware.RequireRole(entities.RoleAdmin)
	doctorOnly := middleware.RequireRole(entities.RoleDoctor)

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints, rate limited per IP
	r.mux.Handle("POST /api/auth/register", r.authRateLimiter.Middleware(http.HandlerFunc(r.authHandler.Register)))
	r.mux.Handle("POST /api/auth/login", r.authRateLimiter.Middleware(http.HandlerFunc(r.authHandler.Login)))

	// Public directory endpoints
	r.mux.HandleFunc("GET /api/doctors", r.userHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}/slots", r.appointmentHandler.GetAvailableSlots)
	r.mux.HandleFunc("GET /api/statistics", r.statisticsHandler.GetStatistics)
	r.mux.HandleFunc("GET /api/statistics/popular-doctors", r.statisticsHandler.GetPopularDoctors)

	// Admin directory endpoints
	r.mux.Handle("GET /api/users", authed(adminOnly(http.HandlerFunc(r.userHandler.ListUsers))))
	r.mux.Handle("GET /api/doctors/pending", authed(adminOnly(http.HandlerFunc(r.userHandler.ListPendingDoctors))))
	r.mux.Handle("POST /api/doctors", authed(adminOnly(http.HandlerFunc(r.userHandler.CreateDoctor))))
	r.mux.Handle("PATCH /api/doctors/{id}/status", authed(adminOnly(http.HandlerFunc(r.userHandler.UpdateDoctorStatus))))
	r.mux.Handle("DELETE /api/doctors/{id}", authed(adminOnly(http.HandlerFunc(r.userHandler.DeleteDoctor))))

	// Profile endpoints
	r.mux.Handle("GET /api/users/{id}", authed(http.HandlerFunc(r.userHandler.GetUser)))
	r.mux.Handle("PATCH /api/users/{id}", authed(http.HandlerFunc(r.userHandler.UpdateUser)))
	r.mux.Handle("PATCH /api/doctors/{id}", authed(http.HandlerFunc(r.userHandler.UpdateDoctor)))
	r.mux.Handle("GET /api/patients/{id}", authed(http.HandlerFunc(r.userHandler.GetPatient)))
	r.mux.Handle("GET /api/doctors/{id}/patients", authed(doctorOnly(http.HandlerFunc(r.userHandler.ListDoctorPatients))))

	// Appointment endpoints
	r.mux.Handle("POST /api/appointments", authed(http.HandlerFunc(r.appointmentHandler.BookAppointment)))
	r.mux.Handle("GET /api/appointments/{id}", authed(http.HandlerFunc(r.appointmentHandler.GetAppointment)))
	r.mux.Handle("PATCH /api/appointments/{id}", authed(http.HandlerFunc(r.appointmentHandler.UpdateAppointment)))
	r.mux.Handle("GET /api/users/{id}/appointments", authed(http.HandlerFunc(r.appointmentHandler.ListAppointments)))

	// Messaging endpoints
	r.mux.Handle("POST /api/messages", authed(http.HandlerFunc(r.messageHandler.SendMessage)))
	r.mux.Handle("GET /api/users/{id}/messages", authed(http.HandlerFunc(r.messageHandler.ListMessages)))
	r.mux.Handle("GET /api/users/{id}/conversations", authed(http.HandlerFunc(r.messageHandler.ListConversations)))
	r.mux.Handle("POST /api/users/{id}/messages/read", authed(http.HandlerFunc(r.messageHandler.MarkMessagesRead)))

	// Notification endpoints
	r.mux.Handle("GET /api/users/{id}/notifications", authed(http.HandlerFunc(r.notificationHandler.ListNotifications)))
	r.mux.Handle("GET /api/users/{id}/notifications/stream", authed(http.HandlerFunc(r.notificationHandler.StreamNotifications)))
	r.mux.Handle("POST /api/notifications/{id}/read", authed(http.HandlerFunc(r.notificationHandler.MarkNotificationRead)))
	r.mux.Handle("POST /api/users/{id}/notifications/read-all", authed(http.HandlerFunc(r.notificationHandler.MarkAllNotificationsRead)))

	// Diagnosis endpoints
	r.mux.Handle("POST /api/diagnoses", authed(doctorOnly(http.HandlerFunc(r.diagnosisHandler.CreateDiagnosis))))
	r.mux.Handle("PATCH /api/diagnoses/{id}", authed(doctorOnly(http.HandlerFunc(r.diagnosisHandler.UpdateDiagnosis))))
	r.mux.Handle("GET /api/users/{id}/diagnoses", authed(http.HandlerFunc(r.diagnosisHandler.ListDiagnoses)))
	r.mux.Handle("GET /api/doctors/{id}/patients/{patientId}/diagnosis", authed(doctorOnly(http.HandlerFunc(r.diagnosisHandler.GetPatientDiagnosis))))

	// Middleware stack, innermost first. CORS wraps everything so headers
	// land on cached responses too.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
