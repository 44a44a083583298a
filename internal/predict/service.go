// Package predict exposes the loan-approval scoring surface: single
// record, JSON batch, and uploaded-file batch.
package predict

import (
	"context"
	"errors"
	"fmt"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/pipeline"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/repository"
)

// Scorer is the trained classifier. Deterministic and side-effect free from
// this package's perspective.
type Scorer interface {
	Predict(rows []domain.FeatureRow) ([]int, []float64, error)
}

// Service runs the validation pipeline and hands clean feature tables to
// the scorer. It holds no mutable state across requests.
type Service struct {
	pipeline *pipeline.Pipeline
	scorer   Scorer
	logRepo  repository.PredictionLogRepository
}

// NewService wires the scoring service.
func NewService(p *pipeline.Pipeline, scorer Scorer, logRepo repository.PredictionLogRepository) *Service {
	return &Service{
		pipeline: p,
		scorer:   scorer,
		logRepo:  logRepo,
	}
}

// Result is the single-record response.
type Result struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// PredictOne validates and scores one application.
func (s *Service) PredictOne(ctx context.Context, app domain.LoanApplication) (Result, error) {
	if err := pipeline.ValidateRecord(app); err != nil {
		return Result{}, err
	}

	row := s.pipeline.Engineer().Derive(app)
	preds, probs, err := s.scorer.Predict([]domain.FeatureRow{row})
	if err != nil {
		return Result{}, err
	}

	s.logScored(ctx, []domain.FeatureRow{row}, preds, probs)
	return Result{Prediction: preds[0], Probability: probs[0]}, nil
}

// PredictBatch scores a batch of typed records from the JSON endpoint.
func (s *Service) PredictBatch(ctx context.Context, apps []domain.LoanApplication) ([]domain.ScoredRow, error) {
	if len(apps) == 0 {
		return nil, errors.New("empty batch")
	}

	rows, err := s.pipeline.RunApplications(apps)
	if err != nil {
		return nil, err
	}
	return s.scoreRows(ctx, rows)
}

// PredictUpload parses an uploaded CSV/XLSX file, runs the full validation
// pipeline, and scores the surviving batch.
func (s *Service) PredictUpload(ctx context.Context, fileName string, payload []byte) ([]domain.ScoredRow, error) {
	if len(payload) == 0 {
		return nil, errors.New("file is empty")
	}

	table, err := pipeline.ParseUpload(fileName, payload)
	if err != nil {
		return nil, err
	}
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("file holds no data rows")
	}

	rows, err := s.pipeline.Run(table)
	if err != nil {
		return nil, err
	}
	return s.scoreRows(ctx, rows)
}

func (s *Service) scoreRows(ctx context.Context, rows []domain.FeatureRow) ([]domain.ScoredRow, error) {
	preds, probs, err := s.scorer.Predict(rows)
	if err != nil {
		return nil, err
	}

	s.logScored(ctx, rows, preds, probs)

	scored := make([]domain.ScoredRow, len(rows))
	for i, row := range rows {
		scored[i] = domain.ScoredRow{
			LoanApplication: row.LoanApplication,
			Prediction:      preds[i],
			Probability:     probs[i],
		}
	}
	return scored, nil
}

// logScored appends every scored row to the durable log. Best effort: the
// discarded result is deliberate, a failed append must never block the
// response.
func (s *Service) logScored(ctx context.Context, rows []domain.FeatureRow, preds []int, probs []float64) {
	if s.logRepo == nil {
		return
	}
	for i, row := range rows {
		_ = s.logRepo.Record(ctx, domain.NewPredictionLogEntry(row, preds[i], probs[i]))
	}
}
