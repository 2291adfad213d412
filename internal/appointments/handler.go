package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nivmalka/barbershop-booking/pkg/logging"
)

// Handler handles HTTP requests for slot availability and booking.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new appointments handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

type slotResponse struct {
	Time string `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AvailableSlots handles GET /available-slots?target_date=YYYY-MM-DD.
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("target_date")

	slots, err := h.svc.AvailableSlots(r.Context(), date)
	if errors.Is(err, ErrMissingDate) {
		writeError(w, http.StatusBadRequest, ErrMissingDate.Error(), "missing_date")
		return
	}
	if err != nil {
		// Datastore detail stays in the logs; the client gets a generic body.
		h.logger.Error("availability lookup failed", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch available slots", "internal")
		return
	}

	resp := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, slotResponse{Time: s})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /create-appointment.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "invalid_body")
		return
	}

	appt, err := h.svc.Create(r.Context(), &req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, appt)
	case IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error(), ErrorCode(err))
	case errors.Is(err, ErrSlotTaken):
		// Still a 400, but the code lets clients tell "re-fetch availability"
		// apart from "fix your input".
		writeError(w, http.StatusBadRequest, ErrSlotTaken.Error(), ErrorCode(err))
	default:
		h.logger.Error("appointment creation failed", "date", req.Date, "time", req.Time, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create appointment", "internal")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
