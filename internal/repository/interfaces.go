// Package repository persists the append-only prediction and feedback logs
// and serves them back for aggregate reporting.
package repository

import (
	"context"
	"time"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

// PredictionLogRepository stores scored rows. Record is called best effort
// from the scoring path; List feeds the stats endpoint.
type PredictionLogRepository interface {
	Record(ctx context.Context, entry domain.PredictionLogEntry) error
	List(ctx context.Context) ([]domain.PredictionLogEntry, error)
}

// FeedbackRepository stores optional user feedback submissions.
type FeedbackRepository interface {
	Record(ctx context.Context, entry domain.FeedbackEntry) error
	List(ctx context.Context) ([]domain.FeedbackEntry, error)
}

// StatsCache is a short-lived cache for serialized aggregate reports. A
// miss or an unavailable backend degrades to direct queries.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
