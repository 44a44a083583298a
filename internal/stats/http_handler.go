package stats

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

// Handler exposes the reporting and feedback endpoints.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the reporting service.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/stats":
		h.handlePredictionStats(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/feedback-stats":
		h.handleFeedbackStats(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/feedback":
		h.handleFeedback(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (h *Handler) handlePredictionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PredictionStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleFeedbackStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.FeedbackStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var entry domain.FeedbackEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.service.RecordFeedback(r.Context(), entry); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "feedback saved",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
