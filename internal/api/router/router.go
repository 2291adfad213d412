package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nivmalka/barbershop-booking/internal/appointments"
	"github.com/nivmalka/barbershop-booking/internal/http/handlers"
	httpmiddleware "github.com/nivmalka/barbershop-booking/internal/http/middleware"
	"github.com/nivmalka/barbershop-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	AdminAppointments   *handlers.AdminAppointmentsHandler
	AdminPassword       string
	CORSAllowedOrigins  []string
	MetricsHandler      http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)

	// Public booking endpoints. Chi answers other methods with 405.
	r.Get("/available-slots", cfg.AppointmentsHandler.AvailableSlots)
	r.Post("/create-appointment", cfg.AppointmentsHandler.Create)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Admin view, behind the static shop-owner gate.
	if cfg.AdminAppointments != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminGate(cfg.AdminPassword))
			admin.Get("/appointments", cfg.AdminAppointments.List)
			admin.Get("/appointments/overview", cfg.AdminAppointments.Overview)
			admin.Delete("/appointments/{id}", cfg.AdminAppointments.Cancel)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
