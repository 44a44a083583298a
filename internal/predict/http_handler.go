package predict

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/pipeline"
)

// Handler exposes the scoring service over HTTP.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with the prediction endpoints.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && (r.URL.Path == "/" || r.URL.Path == "/health"):
		h.handleHealth(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/columns":
		h.handleColumns(w)
	case r.Method == http.MethodGet && r.URL.Path == "/csv-template":
		h.handleCSVTemplate(w)
	case r.Method == http.MethodPost && r.URL.Path == "/predict-one":
		h.handlePredictOne(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/predict-batch-json":
		h.handlePredictBatchJSON(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/predict-batch-file":
		h.handlePredictBatchFile(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/health" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "loan approval API running",
	})
}

func (h *Handler) handleColumns(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"required_columns": domain.RequiredColumns(),
	})
}

func (h *Handler) handleCSVTemplate(w http.ResponseWriter) {
	sample := map[string]string{
		domain.ColGender:            "Male",
		domain.ColMarried:           "Yes",
		domain.ColDependents:        "0",
		domain.ColEducation:         "Graduate",
		domain.ColSelfEmployed:      "No",
		domain.ColPropertyArea:      "Urban",
		domain.ColApplicantIncome:   "5000",
		domain.ColCoapplicantIncome: "2000",
		domain.ColLoanAmount:        "200000",
	}

	columns := domain.RequiredColumns()
	row := make([]string, len(columns))
	for i, column := range columns {
		row[i] = sample[column]
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	_ = writer.Write(columns)
	_ = writer.Write(row)
	writer.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=loan_template.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handlePredictOne(w http.ResponseWriter, r *http.Request) {
	var app domain.LoanApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := h.service.PredictOne(r.Context(), app)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handlePredictBatchJSON(w http.ResponseWriter, r *http.Request) {
	var apps []domain.LoanApplication
	if err := json.NewDecoder(r.Body).Decode(&apps); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	scored, err := h.service.PredictBatch(r.Context(), apps)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scored)
}

func (h *Handler) handlePredictBatchFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return
	}

	scored, err := h.service.PredictUpload(r.Context(), header.Filename, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scored)
}

// writeError maps the error taxonomy onto HTTP responses. Validation
// failures return structured payloads so callers can render field-level
// feedback; scoring failures surface resolved column types but never stack
// traces.
func writeError(w http.ResponseWriter, err error) {
	var missing *domain.MissingColumnsError
	if errors.As(err, &missing) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message":          "missing required columns",
			"missing_columns":  missing.Missing,
			"required_columns": domain.RequiredColumns(),
		})
		return
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, validation)
		return
	}

	var scoring *domain.ScoringError
	if errors.As(err, &scoring) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message":      scoring.Reason,
			"column_types": scoring.ColumnTypes,
		})
		return
	}

	if errors.Is(err, pipeline.ErrUnsupportedFormat) {
		http.Error(w, "unsupported format, use .csv or .xlsx", http.StatusBadRequest)
		return
	}

	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
