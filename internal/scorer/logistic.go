package scorer

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

// Scorer scores feature rows with a loaded logistic-regression model. It is
// read-only after construction and safe for concurrent use.
type Scorer struct {
	model Model
}

// New wraps a loaded model.
func New(model Model) *Scorer {
	return &Scorer{model: model}
}

// PredictProba returns the approval probability per row. Rows are scored in
// parallel across available cores; a failure on any row fails the batch
// with a *domain.ScoringError.
func (s *Scorer) PredictProba(rows []domain.FeatureRow) ([]float64, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]float64, len(rows))
	errs := make([]error, len(rows))
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (len(rows) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := start + rowsPerWorker
		if end > len(rows) {
			end = len(rows)
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i], errs[i] = s.score(rows[i])
			}
		}(start, end)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, &domain.ScoringError{
				Reason:      fmt.Sprintf("row %d: %v", i+1, err),
				ColumnTypes: s.model.ColumnTypes(),
			}
		}
	}
	return out, nil
}

// Predict returns class labels from a threshold over PredictProba, plus the
// probabilities themselves.
func (s *Scorer) Predict(rows []domain.FeatureRow) ([]int, []float64, error) {
	probs, err := s.PredictProba(rows)
	if err != nil {
		return nil, nil, err
	}
	preds := make([]int, len(probs))
	for i, prob := range probs {
		if prob >= s.model.Threshold {
			preds[i] = 1
		}
	}
	return preds, probs, nil
}

func (s *Scorer) score(row domain.FeatureRow) (float64, error) {
	sum := s.model.Bias

	for _, feature := range s.model.Numeric {
		value, ok := row.Numeric(feature.Name)
		if !ok {
			return 0, fmt.Errorf("missing numeric feature %s", feature.Name)
		}
		sum += feature.Weight * standardize(value, feature.Mean, feature.Std)
	}

	for _, feature := range s.model.Categorical {
		value, ok := row.Categorical(feature.Name)
		if !ok {
			return 0, fmt.Errorf("missing categorical feature %s", feature.Name)
		}
		weight, ok := feature.Weights[value]
		if !ok {
			weight, ok = feature.Weights[domain.Unknown]
		}
		if !ok {
			return 0, fmt.Errorf("unseen category %q for %s", value, feature.Name)
		}
		sum += weight
	}

	return sigmoid(sum), nil
}

// standardize applies z-score scaling with a zero-variance guard.
func standardize(value, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (value - mean) / std
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
