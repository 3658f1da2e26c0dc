package reporting

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/clearslot/appointments/pkg/logging"
)

// Summarizer produces a booking summary for one calendar day.
type Summarizer interface {
	DailySummary(ctx context.Context, day time.Time) (*DailySummary, error)
}

type Handler struct {
	repo   Summarizer
	logger *logging.Logger
}

func NewHandler(repo Summarizer, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Daily handles GET /reports/daily?date=YYYY-MM-DD.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string][]string{"errors": {"Invalid date"}})
		return
	}

	summary, err := h.repo.DailySummary(r.Context(), day)
	if err != nil {
		h.logger.Error("failed to build daily summary", "error", err, "date", day)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
