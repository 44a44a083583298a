package pipeline

import (
	"math"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/rates"
)

// Engineer derives model-input features. The interest rate is resolved once
// at construction and injected into every row uniformly; it is not a
// per-applicant input.
type Engineer struct {
	rate float64
}

// NewEngineer resolves the rate for the configured reference year.
func NewEngineer(table *rates.Table, referenceYear int) Engineer {
	return Engineer{rate: table.RateFor(referenceYear)}
}

// Rate returns the injected interest rate.
func (e Engineer) Rate() float64 {
	return e.rate
}

// Derive attaches the derived features to a validated application. Pure: no
// I/O, the input is not mutated.
func (e Engineer) Derive(app domain.LoanApplication) domain.FeatureRow {
	return domain.FeatureRow{
		LoanApplication: app,
		LoanAmountLog:   loanAmountLog(app.LoanAmount),
		InterestRate:    e.rate,
	}
}

// loanAmountLog is zero for non-positive amounts. Validation already
// rejects those, but the fallback stays as a second line of defense.
func loanAmountLog(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return math.Log(amount)
}
