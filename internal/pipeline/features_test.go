package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/rates"
)

func testEngineer(t *testing.T) Engineer {
	t.Helper()
	table, err := rates.Parse([]byte("year,obs_value\n2024,3.41\n2025,3.5\n"), "test")
	if err != nil {
		t.Fatalf("failed to parse rate fixture: %v", err)
	}
	return NewEngineer(table, 2025)
}

func TestDeriveLogAndRate(t *testing.T) {
	engineer := testEngineer(t)
	app := validApplication()

	row := engineer.Derive(app)

	if row.InterestRate != 3.5 {
		t.Fatalf("expected interest rate 3.5, got %v", row.InterestRate)
	}
	if math.Abs(row.LoanAmountLog-12.206) > 0.001 {
		t.Fatalf("expected LoanAmount_log ~12.206, got %v", row.LoanAmountLog)
	}
	if row.LoanApplication != app {
		t.Fatalf("original fields must pass through unchanged")
	}
}

func TestDeriveLogBoundaryValues(t *testing.T) {
	engineer := testEngineer(t)

	app := validApplication()
	app.LoanAmount = 1
	if got := engineer.Derive(app).LoanAmountLog; got != 0 {
		t.Fatalf("ln(1) must be 0, got %v", got)
	}

	app.LoanAmount = math.E
	if got := engineer.Derive(app).LoanAmountLog; math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("ln(e) must be ~1, got %v", got)
	}

	// The zero fallback stays reachable for amounts that slip past
	// validation.
	app.LoanAmount = 0
	if got := engineer.Derive(app).LoanAmountLog; got != 0 {
		t.Fatalf("non-positive amount must derive 0, got %v", got)
	}
	app.LoanAmount = -10
	if got := engineer.Derive(app).LoanAmountLog; got != 0 {
		t.Fatalf("non-positive amount must derive 0, got %v", got)
	}
}

func TestDeriveIsPure(t *testing.T) {
	engineer := testEngineer(t)
	app := validApplication()

	first := engineer.Derive(app)
	second := engineer.Derive(app)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("derive must be deterministic: %+v != %+v", first, second)
	}
}

func TestRateFallsBackToLatestKnownYear(t *testing.T) {
	table, err := rates.Parse([]byte("year,obs_value\n2023,3.02\n"), "test")
	if err != nil {
		t.Fatalf("failed to parse rate fixture: %v", err)
	}

	engineer := NewEngineer(table, 2025)
	if engineer.Rate() != 3.02 {
		t.Fatalf("expected fallback rate 3.02, got %v", engineer.Rate())
	}
}
