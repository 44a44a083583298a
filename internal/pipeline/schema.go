package pipeline

import (
	"fmt"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

// MissingColumns returns every required column absent from the headers, in
// required-column order.
func MissingColumns(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		present[header] = struct{}{}
	}

	var missing []string
	for _, column := range domain.RequiredColumns() {
		if _, ok := present[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}

// ValidateRecord checks a single typed application: categorical values must
// belong to their enumerated domain (Unknown included) and numeric fields
// must satisfy the loan constraints.
func ValidateRecord(app domain.LoanApplication) error {
	for _, column := range domain.CategoricalColumns() {
		value, _ := app.Categorical(column)
		if !legalCategory(column, value) {
			return fmt.Errorf("invalid value %q for %s", value, column)
		}
	}
	if app.ApplicantIncome < 0 {
		return fmt.Errorf("%s cannot be negative", domain.ColApplicantIncome)
	}
	if app.CoapplicantIncome < 0 {
		return fmt.Errorf("%s cannot be negative", domain.ColCoapplicantIncome)
	}
	if app.LoanAmount <= 0 {
		return fmt.Errorf("%s must be greater than zero", domain.ColLoanAmount)
	}
	return nil
}

func legalCategory(column, value string) bool {
	for _, legal := range domain.CategoricalValues[column] {
		if value == legal {
			return true
		}
	}
	return false
}
