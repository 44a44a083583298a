package repository

import (
	"context"
	"fmt"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type predictionLogRepository struct {
	pool *pgxpool.Pool
}

// NewPredictionLogRepository wires a repository backed by pgxpool.
func NewPredictionLogRepository(pool *pgxpool.Pool) PredictionLogRepository {
	return &predictionLogRepository{pool: pool}
}

func (r *predictionLogRepository) Record(ctx context.Context, entry domain.PredictionLogEntry) error {
	if r.pool == nil {
		return fmt.Errorf("prediction log repository not initialized")
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO prediction_logs (
			id, gender, married, dependents, education, self_employed, property_area,
			applicant_income, coapplicant_income, loan_amount, loan_amount_log,
			interest_rate, prediction, probability)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		entry.ID,
		entry.Gender,
		entry.Married,
		entry.Dependents,
		entry.Education,
		entry.SelfEmployed,
		entry.PropertyArea,
		entry.ApplicantIncome,
		entry.CoapplicantIncome,
		entry.LoanAmount,
		entry.LoanAmountLog,
		entry.InterestRate,
		entry.Prediction,
		entry.Probability,
	)
	if err != nil {
		return fmt.Errorf("failed to record prediction: %w", err)
	}
	return nil
}

func (r *predictionLogRepository) List(ctx context.Context) ([]domain.PredictionLogEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("prediction log repository not initialized")
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, gender, married, dependents, education, self_employed, property_area,
		        applicant_income, coapplicant_income, loan_amount, loan_amount_log,
		        interest_rate, prediction, probability, created_at
		 FROM prediction_logs
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	entries := []domain.PredictionLogEntry{}
	for rows.Next() {
		var (
			entry     domain.PredictionLogEntry
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.Gender,
			&entry.Married,
			&entry.Dependents,
			&entry.Education,
			&entry.SelfEmployed,
			&entry.PropertyArea,
			&entry.ApplicantIncome,
			&entry.CoapplicantIncome,
			&entry.LoanAmount,
			&entry.LoanAmountLog,
			&entry.InterestRate,
			&entry.Prediction,
			&entry.Probability,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", scanErr)
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", rowsErr)
	}
	return entries, nil
}
