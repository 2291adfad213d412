package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nivmalka/barbershop-booking/pkg/logging"
)

// AdminAppointmentsHandler serves the shop owner's appointment list. It reads
// the authoritative appointments table directly, so what the admin sees is
// exactly what the booking endpoints wrote — there is no client-side copy.
type AdminAppointmentsHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewAdminAppointmentsHandler creates a new admin appointments handler.
func NewAdminAppointmentsHandler(db *sql.DB, logger *logging.Logger) *AdminAppointmentsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminAppointmentsHandler{db: db, logger: logger}
}

// AdminAppointment is one row of the admin list view.
type AdminAppointment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAppointmentsResponse is the response for listing appointments.
type ListAppointmentsResponse struct {
	Appointments []AdminAppointment `json:"appointments"`
	Count        int                `json:"count"`
}

// List handles GET /admin/appointments with an optional ?date= filter.
func (h *AdminAppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id, name, phone, date, time, created_at FROM appointments ORDER BY date, time`
	args := []any{}
	if date := r.URL.Query().Get("date"); date != "" {
		query = `SELECT id, name, phone, date, time, created_at FROM appointments WHERE date = $1 ORDER BY time`
		args = append(args, date)
	}

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		h.logger.Error("admin list query failed", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	appointments := make([]AdminAppointment, 0)
	for rows.Next() {
		var a AdminAppointment
		if err := rows.Scan(&a.ID, &a.Name, &a.Phone, &a.Date, &a.Time, &a.CreatedAt); err != nil {
			h.logger.Error("admin list scan failed", "error", err)
			http.Error(w, "failed to list appointments", http.StatusInternalServerError)
			return
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		h.logger.Error("admin list iteration failed", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, ListAppointmentsResponse{
		Appointments: appointments,
		Count:        len(appointments),
	})
}

// Cancel handles DELETE /admin/appointments/{id}. Cancellation deletes the
// row, which frees the slot for rebooking on the next availability read.
func (h *AdminAppointmentsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	res, err := h.db.ExecContext(r.Context(), `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		h.logger.Error("admin cancel failed", "id", id, "error", err)
		http.Error(w, "failed to cancel appointment", http.StatusInternalServerError)
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		h.logger.Error("admin cancel rows affected failed", "id", id, "error", err)
		http.Error(w, "failed to cancel appointment", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}

	h.logger.Info("appointment cancelled", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// DayCount is the booked-slot count for one date.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Overview handles GET /admin/appointments/overview: booked counts per date.
func (h *AdminAppointmentsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(),
		`SELECT date, COUNT(*) FROM appointments GROUP BY date ORDER BY date`)
	if err != nil {
		h.logger.Error("admin overview query failed", "error", err)
		http.Error(w, "failed to load overview", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	days := make([]DayCount, 0)
	for rows.Next() {
		var d DayCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			h.logger.Error("admin overview scan failed", "error", err)
			http.Error(w, "failed to load overview", http.StatusInternalServerError)
			return
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		h.logger.Error("admin overview iteration failed", "error", err)
		http.Error(w, "failed to load overview", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"days": days})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
