// Package stats aggregates the prediction and feedback logs for the admin
// reporting endpoints.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/repository"

	"github.com/google/uuid"
)

const (
	predictionStatsKey = "loan:stats:predictions"
	cacheTTL           = 30 * time.Second
	histogramBins      = 20
)

// Service computes aggregate reports, cache-aside over an optional redis
// cache. A cold or unavailable cache degrades to direct queries.
type Service struct {
	predictions repository.PredictionLogRepository
	feedback    repository.FeedbackRepository
	cache       repository.StatsCache
}

// NewService wires the reporting service. cache may be nil.
func NewService(
	predictions repository.PredictionLogRepository,
	feedback repository.FeedbackRepository,
	cache repository.StatsCache,
) *Service {
	return &Service{
		predictions: predictions,
		feedback:    feedback,
		cache:       cache,
	}
}

// PredictionStats aggregates every logged prediction.
func (s *Service) PredictionStats(ctx context.Context) (domain.PredictionStats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, predictionStatsKey); ok {
			var stats domain.PredictionStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	entries, err := s.predictions.List(ctx)
	if err != nil {
		return domain.PredictionStats{}, fmt.Errorf("failed to load prediction log: %w", err)
	}

	stats := aggregatePredictions(entries)

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			// Cache writes are best effort.
			_ = s.cache.Set(ctx, predictionStatsKey, string(payload), cacheTTL)
		}
	}
	return stats, nil
}

// RecordFeedback persists one feedback submission. Unlike prediction
// logging this is the request's purpose, so failures are returned.
func (s *Service) RecordFeedback(ctx context.Context, entry domain.FeedbackEntry) error {
	entry.ID = uuid.New()
	if err := s.feedback.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// FeedbackStats aggregates every feedback submission.
func (s *Service) FeedbackStats(ctx context.Context) (domain.FeedbackStats, error) {
	entries, err := s.feedback.List(ctx)
	if err != nil {
		return domain.FeedbackStats{}, fmt.Errorf("failed to load feedback log: %w", err)
	}
	return aggregateFeedback(entries), nil
}

func aggregatePredictions(entries []domain.PredictionLogEntry) domain.PredictionStats {
	stats := domain.PredictionStats{
		ByPropertyArea: map[string]int{},
		ProbHist:       []domain.ProbBucket{},
	}
	if len(entries) == 0 {
		return stats
	}

	var probSum float64
	counts := make([]int, histogramBins)
	for _, entry := range entries {
		probSum += entry.Probability
		if entry.Prediction == 1 {
			stats.ClassCounts.Approved++
			stats.ByPropertyArea[entry.PropertyArea]++
		} else {
			stats.ClassCounts.Rejected++
		}

		idx := int(entry.Probability * histogramBins)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	stats.Total = len(entries)
	stats.ApprovedRate = float64(stats.ClassCounts.Approved) / float64(stats.Total)
	stats.AvgProb = probSum / float64(stats.Total)

	width := 1.0 / histogramBins
	for i, count := range counts {
		stats.ProbHist = append(stats.ProbHist, domain.ProbBucket{
			Bin:   fmt.Sprintf("%.2f-%.2f", float64(i)*width, float64(i+1)*width),
			Count: count,
		})
	}
	return stats
}

func aggregateFeedback(entries []domain.FeedbackEntry) domain.FeedbackStats {
	stats := domain.FeedbackStats{
		JobSituation:   map[string]int{},
		LoanObjective:  map[string]int{},
		PurchaseDelay:  map[string]int{},
		Discovery:      map[string]int{},
		DiscoveryTexts: []string{},
	}

	var contributionSum float64
	var contributions int
	for _, entry := range entries {
		if entry.JobSituation != "" {
			stats.JobSituation[entry.JobSituation]++
		}
		if entry.LoanObjective != "" {
			stats.LoanObjective[entry.LoanObjective]++
		}
		if entry.PurchaseDelay != "" {
			stats.PurchaseDelay[entry.PurchaseDelay]++
		}
		if entry.Discovery != "" {
			stats.Discovery[entry.Discovery]++
			stats.DiscoveryTexts = append(stats.DiscoveryTexts, entry.Discovery)
		}
		if entry.PersonalContribution != nil {
			contributionSum += *entry.PersonalContribution
			contributions++
		}
	}

	stats.Total = len(entries)
	if contributions > 0 {
		stats.AvgContribution = contributionSum / float64(contributions)
	}
	return stats
}
