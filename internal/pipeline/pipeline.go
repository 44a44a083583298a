// Package pipeline turns arbitrary uploaded tabular data into a clean,
// model-ready feature table, collecting per-row errors instead of failing
// on the first bad cell. The stage order is fixed: column presence, then
// normalization, then numeric-parse validation, then domain rules, then
// feature derivation.
package pipeline

import (
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

// Pipeline orchestrates normalization, validation, and feature derivation
// over a batch. It holds no mutable state across runs.
type Pipeline struct {
	engineer Engineer
}

// New builds a pipeline around a feature engineer.
func New(engineer Engineer) *Pipeline {
	return &Pipeline{engineer: engineer}
}

// Engineer exposes the feature engineer for single-record scoring.
func (p *Pipeline) Engineer() Engineer {
	return p.engineer
}

// Run validates a raw batch and returns the feature table, or a structured
// error: *domain.MissingColumnsError when required columns are absent,
// *domain.ValidationError listing every offending (column, rows) pair when
// cells fail to parse or violate domain rules.
func (p *Pipeline) Run(table *RawTable) ([]domain.FeatureRow, error) {
	if missing := MissingColumns(table.Headers); len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Missing: missing}
	}

	rawRows := table.RawRows()
	normalized := make([]NormalizedRow, len(rawRows))
	for i, raw := range rawRows {
		normalized[i] = NormalizeRow(raw)
	}

	if err := collectParseFailures(normalized); err != nil {
		return nil, err
	}
	if err := collectRuleViolations(normalized); err != nil {
		return nil, err
	}

	rows := make([]domain.FeatureRow, len(normalized))
	for i, row := range normalized {
		rows[i] = p.engineer.Derive(toApplication(row))
	}
	return rows, nil
}

// RunApplications applies the domain-rule and feature stages to already
// typed records, as received on the JSON batch endpoint.
func (p *Pipeline) RunApplications(apps []domain.LoanApplication) ([]domain.FeatureRow, error) {
	violations := map[string][]int{}
	for i, app := range apps {
		rowNumber := i + 1
		if app.LoanAmount <= 0 {
			violations[domain.ColLoanAmount] = append(violations[domain.ColLoanAmount], rowNumber)
		}
		if app.ApplicantIncome < 0 {
			violations[domain.ColApplicantIncome] = append(violations[domain.ColApplicantIncome], rowNumber)
		}
		if app.CoapplicantIncome < 0 {
			violations[domain.ColCoapplicantIncome] = append(violations[domain.ColCoapplicantIncome], rowNumber)
		}
	}
	if len(violations) > 0 {
		return nil, &domain.ValidationError{
			Message:      "domain constraint violations",
			RowsByColumn: violations,
		}
	}

	rows := make([]domain.FeatureRow, len(apps))
	for i, app := range apps {
		rows[i] = p.engineer.Derive(app)
	}
	return rows, nil
}

// collectParseFailures gathers, per numeric column, every 1-indexed row
// whose cell normalized to the missing-value marker. All offending pairs
// are reported in one response.
func collectParseFailures(rows []NormalizedRow) error {
	failures := map[string][]int{}
	for i, row := range rows {
		for _, column := range domain.NumericColumns() {
			if Missing(row.Numeric[column]) {
				failures[column] = append(failures[column], i+1)
			}
		}
	}
	if len(failures) > 0 {
		return &domain.ValidationError{
			Message:      "invalid numeric values",
			RowsByColumn: failures,
		}
	}
	return nil
}

// collectRuleViolations checks the loan domain rules. Violations across all
// rules are aggregated into one report rather than returned rule by rule.
func collectRuleViolations(rows []NormalizedRow) error {
	violations := map[string][]int{}
	for i, row := range rows {
		rowNumber := i + 1
		if row.Numeric[domain.ColLoanAmount] <= 0 {
			violations[domain.ColLoanAmount] = append(violations[domain.ColLoanAmount], rowNumber)
		}
		if row.Numeric[domain.ColApplicantIncome] < 0 {
			violations[domain.ColApplicantIncome] = append(violations[domain.ColApplicantIncome], rowNumber)
		}
		if row.Numeric[domain.ColCoapplicantIncome] < 0 {
			violations[domain.ColCoapplicantIncome] = append(violations[domain.ColCoapplicantIncome], rowNumber)
		}
	}
	if len(violations) > 0 {
		return &domain.ValidationError{
			Message:      "domain constraint violations",
			RowsByColumn: violations,
		}
	}
	return nil
}

func toApplication(row NormalizedRow) domain.LoanApplication {
	return domain.LoanApplication{
		Gender:            row.Categorical[domain.ColGender],
		Married:           row.Categorical[domain.ColMarried],
		Dependents:        row.Categorical[domain.ColDependents],
		Education:         row.Categorical[domain.ColEducation],
		SelfEmployed:      row.Categorical[domain.ColSelfEmployed],
		PropertyArea:      row.Categorical[domain.ColPropertyArea],
		ApplicantIncome:   row.Numeric[domain.ColApplicantIncome],
		CoapplicantIncome: row.Numeric[domain.ColCoapplicantIncome],
		LoanAmount:        row.Numeric[domain.ColLoanAmount],
	}
}
