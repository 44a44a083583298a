package rates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

func TestParseResolvesExactYear(t *testing.T) {
	table, err := Parse([]byte("year,obs_value\n2024,3.41\n2025,3.5\n"), "test")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}

	if got := table.RateFor(2025); got != 3.5 {
		t.Fatalf("expected 3.5 for 2025, got %v", got)
	}
	if got := table.RateFor(2024); got != 3.41 {
		t.Fatalf("expected 3.41 for 2024, got %v", got)
	}
}

func TestParseFallsBackToLatestYear(t *testing.T) {
	table, err := Parse([]byte("year,obs_value\n2021,1.12\n2023,3.02\n2022,1.85\n"), "test")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}

	if got := table.RateFor(2030); got != 3.02 {
		t.Fatalf("expected latest known rate 3.02, got %v", got)
	}
}

func TestParseRejectsMissingColumns(t *testing.T) {
	_, err := Parse([]byte("annee,taux\n2025,3.5\n"), "test")

	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestParseRejectsEmptySource(t *testing.T) {
	_, err := Parse([]byte(""), "test")

	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for empty source, got %v", err)
	}

	_, err = Parse([]byte("year,obs_value\n"), "test")
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for headers-only source, got %v", err)
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	table, err := Parse([]byte("year,obs_value\nnot-a-year,1.0\n2025,3.5\n2024,not-a-rate\n"), "test")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}

	if table.Years() != 1 {
		t.Fatalf("expected 1 usable year, got %d", table.Years())
	}
	if got := table.RateFor(2025); got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}

func TestLoadReadsFileWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.csv")
	payload := append([]byte{0xEF, 0xBB, 0xBF}, []byte("year,obs_value\n2025,3.5\n")...)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if got := table.RateFor(2025); got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}
