package domain

import (
	"time"

	"github.com/google/uuid"
)

// PredictionLogEntry is one scored row appended to the durable prediction
// log. Writes are best effort; readers drive aggregate reporting.
type PredictionLogEntry struct {
	ID                uuid.UUID `json:"id"`
	Gender            string    `json:"gender"`
	Married           string    `json:"married"`
	Dependents        string    `json:"dependents"`
	Education         string    `json:"education"`
	SelfEmployed      string    `json:"self_employed"`
	PropertyArea      string    `json:"property_area"`
	ApplicantIncome   float64   `json:"applicant_income"`
	CoapplicantIncome float64   `json:"coapplicant_income"`
	LoanAmount        float64   `json:"loan_amount"`
	LoanAmountLog     float64   `json:"loan_amount_log"`
	InterestRate      float64   `json:"interest_rate"`
	Prediction        int       `json:"prediction"`
	Probability       float64   `json:"probability"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewPredictionLogEntry flattens a scored feature row into a log entry.
func NewPredictionLogEntry(row FeatureRow, prediction int, probability float64) PredictionLogEntry {
	return PredictionLogEntry{
		ID:                uuid.New(),
		Gender:            row.Gender,
		Married:           row.Married,
		Dependents:        row.Dependents,
		Education:         row.Education,
		SelfEmployed:      row.SelfEmployed,
		PropertyArea:      row.PropertyArea,
		ApplicantIncome:   row.ApplicantIncome,
		CoapplicantIncome: row.CoapplicantIncome,
		LoanAmount:        row.LoanAmount,
		LoanAmountLog:     row.LoanAmountLog,
		InterestRate:      row.InterestRate,
		Prediction:        prediction,
		Probability:       probability,
	}
}

// FeedbackEntry is one optional user feedback submission.
type FeedbackEntry struct {
	ID                   uuid.UUID `json:"id"`
	JobSituation         string    `json:"jobSituation"`
	LoanObjective        string    `json:"loanObjective"`
	PurchaseDelay        string    `json:"purchaseDelay"`
	PersonalContribution *float64  `json:"personalContribution,omitempty"`
	Discovery            string    `json:"discovery"`
	CreatedAt            time.Time `json:"created_at"`
}
