package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/clearslot/appointments/pkg/logging"
)

// Handler handles HTTP requests for the scheduling endpoints.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new scheduling handler.
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// createPayload is the wire shape for booking requests. starts_at stays a
// string here so a malformed timestamp degrades to a presence failure
// instead of a decode error.
type createPayload struct {
	StartsAt    string `json:"starts_at"`
	Type        string `json:"type"`
	PatientName string `json:"patient_name"`
}

// timestampLayouts are the accepted starts_at formats, all read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ListAvailable handles GET /appointments?date=YYYY-MM-DD&type=<type>.
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		respondErrors(w, http.StatusUnprocessableEntity, ErrInvalidDate.Error())
		return
	}

	slots, err := h.svc.Availability(r.Context(), day, r.URL.Query().Get("type"))
	if err != nil {
		h.logger.Error("failed to enumerate availability", "error", err, "date", day)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, slots)
}

// Create handles POST /appointments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req := &CreateAppointmentRequest{
		Type:        payload.Type,
		PatientName: payload.PatientName,
	}
	if strings.TrimSpace(payload.StartsAt) != "" {
		if t, ok := parseTimestamp(payload.StartsAt); ok {
			req.StartsAt = &t
		}
	}

	appt, err := h.svc.Book(r.Context(), req)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			respondErrors(w, http.StatusUnprocessableEntity, verrs.Messages()...)
			return
		}
		h.logger.Error("failed to create appointment", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, appt)
}

// Schedule handles GET /schedule?date=YYYY-MM-DD.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		respondErrors(w, http.StatusUnprocessableEntity, ErrInvalidDate.Error())
		return
	}

	appts, err := h.svc.Schedule(r.Context(), day)
	if err != nil {
		h.logger.Error("failed to load schedule", "error", err, "date", day)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, appts)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondErrors(w http.ResponseWriter, status int, messages ...string) {
	respondJSON(w, status, map[string][]string{"errors": messages})
}
