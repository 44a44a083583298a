// Package scorer evaluates the trained loan-approval classifier: a
// logistic regression over standardized numeric features and one-hot
// encoded categoricals, with parameters shipped as a JSON model file.
package scorer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

// NumericFeature holds the weight and standardization constants for one
// numeric model input.
type NumericFeature struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
}

// CategoricalFeature holds the per-category weights for one categorical
// column. An Unknown entry is the fallback for unseen categories.
type CategoricalFeature struct {
	Name    string             `json:"name"`
	Weights map[string]float64 `json:"weights"`
}

// Model is the serialized classifier.
type Model struct {
	Bias        float64              `json:"bias"`
	Threshold   float64              `json:"threshold"`
	Numeric     []NumericFeature     `json:"numeric"`
	Categorical []CategoricalFeature `json:"categorical"`
}

// LoadModel reads and checks a model file. Failures are configuration
// errors: fatal at startup, never recoverable per request.
func LoadModel(path string) (Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Model{}, &domain.ConfigurationError{Source: path, Reason: err.Error()}
	}

	var model Model
	if err := json.Unmarshal(payload, &model); err != nil {
		return Model{}, &domain.ConfigurationError{Source: path, Reason: fmt.Sprintf("invalid model file: %v", err)}
	}
	if err := model.check(); err != nil {
		return Model{}, &domain.ConfigurationError{Source: path, Reason: err.Error()}
	}
	if model.Threshold <= 0 || model.Threshold >= 1 {
		model.Threshold = 0.5
	}
	return model, nil
}

func (m Model) check() error {
	if len(m.Numeric) == 0 && len(m.Categorical) == 0 {
		return fmt.Errorf("model has no features")
	}
	for _, feature := range m.Numeric {
		if _, ok := (domain.FeatureRow{}).Numeric(feature.Name); !ok {
			return fmt.Errorf("unknown numeric feature %q", feature.Name)
		}
	}
	for _, feature := range m.Categorical {
		if _, ok := (domain.LoanApplication{}).Categorical(feature.Name); !ok {
			return fmt.Errorf("unknown categorical feature %q", feature.Name)
		}
		if len(feature.Weights) == 0 {
			return fmt.Errorf("categorical feature %q has no weights", feature.Name)
		}
	}
	return nil
}

// ColumnTypes resolves the feature-table column types the model consumes,
// reported on scoring failures for debugging.
func (m Model) ColumnTypes() map[string]string {
	types := make(map[string]string, len(m.Numeric)+len(m.Categorical))
	for _, feature := range m.Numeric {
		types[feature.Name] = "float64"
	}
	for _, feature := range m.Categorical {
		types[feature.Name] = "string"
	}
	return types
}
