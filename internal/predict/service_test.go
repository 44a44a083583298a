package predict

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/pipeline"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/rates"
)

type stubScorer struct {
	probability float64
	err         error
	calls       int
}

func (s *stubScorer) Predict(rows []domain.FeatureRow) ([]int, []float64, error) {
	s.calls++
	if s.err != nil {
		return nil, nil, s.err
	}
	preds := make([]int, len(rows))
	probs := make([]float64, len(rows))
	for i := range rows {
		probs[i] = s.probability
		if s.probability >= 0.5 {
			preds[i] = 1
		}
	}
	return preds, probs, nil
}

type stubLogRepo struct {
	entries []domain.PredictionLogEntry
	err     error
}

func (r *stubLogRepo) Record(_ context.Context, entry domain.PredictionLogEntry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubLogRepo) List(_ context.Context) ([]domain.PredictionLogEntry, error) {
	return r.entries, nil
}

func testService(t *testing.T, scorer *stubScorer, logRepo *stubLogRepo) *Service {
	t.Helper()
	table, err := rates.Parse([]byte("year,obs_value\n2025,3.5\n"), "test")
	if err != nil {
		t.Fatalf("failed to parse rate fixture: %v", err)
	}
	return NewService(pipeline.New(pipeline.NewEngineer(table, 2025)), scorer, logRepo)
}

func validApplication() domain.LoanApplication {
	return domain.LoanApplication{
		Gender:            "Male",
		Married:           "Yes",
		Dependents:        "0",
		Education:         "Graduate",
		SelfEmployed:      "No",
		PropertyArea:      "Urban",
		ApplicantIncome:   5000,
		CoapplicantIncome: 2000,
		LoanAmount:        200000,
	}
}

func TestPredictOneScoresAndLogs(t *testing.T) {
	scorer := &stubScorer{probability: 0.8}
	logRepo := &stubLogRepo{}
	service := testService(t, scorer, logRepo)

	result, err := service.PredictOne(context.Background(), validApplication())
	if err != nil {
		t.Fatalf("predict returned error: %v", err)
	}
	if result.Prediction != 1 || result.Probability != 0.8 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(logRepo.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logRepo.entries))
	}
	entry := logRepo.entries[0]
	if entry.InterestRate != 3.5 || entry.Prediction != 1 {
		t.Fatalf("log entry missing derived features: %+v", entry)
	}
}

func TestPredictOneSurvivesLoggingFailure(t *testing.T) {
	scorer := &stubScorer{probability: 0.8}
	logRepo := &stubLogRepo{err: errors.New("disk full")}
	service := testService(t, scorer, logRepo)

	result, err := service.PredictOne(context.Background(), validApplication())
	if err != nil {
		t.Fatalf("a failed log append must not fail the prediction: %v", err)
	}
	if result.Prediction != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestPredictOneRejectsInvalidRecord(t *testing.T) {
	scorer := &stubScorer{probability: 0.8}
	service := testService(t, scorer, &stubLogRepo{})

	app := validApplication()
	app.LoanAmount = 0

	if _, err := service.PredictOne(context.Background(), app); err == nil {
		t.Fatal("expected validation error")
	}
	if scorer.calls != 0 {
		t.Fatal("scorer must not run for invalid input")
	}
}

func TestPredictOnePropagatesScoringError(t *testing.T) {
	scoringErr := &domain.ScoringError{Reason: "shape mismatch"}
	service := testService(t, &stubScorer{err: scoringErr}, &stubLogRepo{})

	_, err := service.PredictOne(context.Background(), validApplication())

	var scoring *domain.ScoringError
	if !errors.As(err, &scoring) {
		t.Fatalf("expected ScoringError, got %v", err)
	}
}

func TestPredictBatchMergesVerdicts(t *testing.T) {
	logRepo := &stubLogRepo{}
	service := testService(t, &stubScorer{probability: 0.6}, logRepo)

	apps := []domain.LoanApplication{validApplication(), validApplication()}
	scored, err := service.PredictBatch(context.Background(), apps)
	if err != nil {
		t.Fatalf("predict returned error: %v", err)
	}

	if len(scored) != 2 {
		t.Fatalf("expected 2 scored rows, got %d", len(scored))
	}
	for i, row := range scored {
		if row.LoanApplication != apps[i] {
			t.Fatalf("row %d lost original fields: %+v", i+1, row)
		}
		if row.Prediction != 1 || row.Probability != 0.6 {
			t.Fatalf("row %d missing verdict: %+v", i+1, row)
		}
	}
	if len(logRepo.entries) != 2 {
		t.Fatalf("expected every scored row logged, got %d", len(logRepo.entries))
	}
}

func TestPredictBatchRejectsEmpty(t *testing.T) {
	service := testService(t, &stubScorer{probability: 0.6}, &stubLogRepo{})
	if _, err := service.PredictBatch(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty batch")
	}
}

func TestPredictUploadEndToEnd(t *testing.T) {
	service := testService(t, &stubScorer{probability: 0.9}, &stubLogRepo{})

	data := strings.Join(domain.RequiredColumns(), ",") + "\n" +
		"Male,Yes,0,Graduate,No,Urban,\"€ 5,000\",2000,200000\n"

	scored, err := service.PredictUpload(context.Background(), "batch.csv", []byte(data))
	if err != nil {
		t.Fatalf("upload returned error: %v", err)
	}
	if len(scored) != 1 {
		t.Fatalf("expected 1 scored row, got %d", len(scored))
	}
	if scored[0].ApplicantIncome != 5000 {
		t.Fatalf("currency cell must normalize to 5000, got %v", scored[0].ApplicantIncome)
	}
}

func TestPredictUploadSurfacesValidationErrors(t *testing.T) {
	service := testService(t, &stubScorer{probability: 0.9}, &stubLogRepo{})

	data := strings.Join(domain.RequiredColumns(), ",") + "\n" +
		"Male,Yes,0,Graduate,No,Urban,5000,2000,xyz\n"

	_, err := service.PredictUpload(context.Background(), "batch.csv", []byte(data))

	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
