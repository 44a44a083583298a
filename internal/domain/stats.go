package domain

// ProbBucket is one bin of the probability histogram.
type ProbBucket struct {
	Bin   string `json:"bin"`
	Count int    `json:"count"`
}

// ClassCounts splits logged predictions by verdict.
type ClassCounts struct {
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// PredictionStats aggregates the prediction log for reporting.
type PredictionStats struct {
	Total          int            `json:"total"`
	ApprovedRate   float64        `json:"approved_rate"`
	AvgProb        float64        `json:"avg_prob"`
	ClassCounts    ClassCounts    `json:"class_counts"`
	ByPropertyArea map[string]int `json:"by_property_area"`
	ProbHist       []ProbBucket   `json:"prob_hist"`
}

// FeedbackStats aggregates the feedback log for reporting.
type FeedbackStats struct {
	Total           int            `json:"total"`
	JobSituation    map[string]int `json:"jobSituation"`
	LoanObjective   map[string]int `json:"loanObjective"`
	PurchaseDelay   map[string]int `json:"purchaseDelay"`
	AvgContribution float64        `json:"avgContribution"`
	Discovery       map[string]int `json:"discovery"`
	DiscoveryTexts  []string       `json:"discovery_texts"`
}
