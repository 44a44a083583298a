package repository

import (
	"context"
	"fmt"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository wires a repository backed by pgxpool.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Record(ctx context.Context, entry domain.FeedbackEntry) error {
	if r.pool == nil {
		return fmt.Errorf("feedback repository not initialized")
	}

	var contribution any
	if entry.PersonalContribution != nil {
		contribution = *entry.PersonalContribution
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO feedback_logs (id, job_situation, loan_objective, purchase_delay, personal_contribution, discovery)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID,
		entry.JobSituation,
		entry.LoanObjective,
		entry.PurchaseDelay,
		contribution,
		entry.Discovery,
	)
	if err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.FeedbackEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("feedback repository not initialized")
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, job_situation, loan_objective, purchase_delay, personal_contribution, discovery, created_at
		 FROM feedback_logs
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	entries := []domain.FeedbackEntry{}
	for rows.Next() {
		var (
			entry        domain.FeedbackEntry
			contribution pgtype.Float8
			createdAt    pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.JobSituation,
			&entry.LoanObjective,
			&entry.PurchaseDelay,
			&contribution,
			&entry.Discovery,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", scanErr)
		}
		if contribution.Valid {
			value := contribution.Float64
			entry.PersonalContribution = &value
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", rowsErr)
	}
	return entries, nil
}
