package pipeline

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

// nonNumericPattern strips everything that is not a digit, a decimal point,
// or a minus sign. This tolerates currency symbols, thousands separators,
// and whitespace embedded in the cell.
var nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)

// NormalizedRow is the output of normalization: canonical categorical
// strings plus numeric values where NaN marks an unparseable cell.
type NormalizedRow struct {
	Categorical map[string]string
	Numeric     map[string]float64
}

// NormalizeRow coerces one raw row into canonical typed values. It is total
// and best effort: it never fails, bad cells surface later as validation
// failures.
func NormalizeRow(raw domain.RawRow) NormalizedRow {
	row := NormalizedRow{
		Categorical: make(map[string]string, 6),
		Numeric:     make(map[string]float64, 3),
	}
	for _, column := range domain.CategoricalColumns() {
		row.Categorical[column] = NormalizeCategorical(raw[column])
	}
	for _, column := range domain.NumericColumns() {
		row.Numeric[column] = NormalizeNumeric(raw[column])
	}
	return row
}

// NormalizeCategorical trims a cell and maps blank and textual-null tokens
// to the Unknown sentinel.
func NormalizeCategorical(value string) string {
	value = strings.TrimSpace(value)
	switch value {
	case "", "nan", "NaN", "None":
		return domain.Unknown
	}
	return value
}

// NormalizeNumeric strips non-numeric characters and parses what remains.
// An empty result, a lone "." or "-", or a parse failure yields NaN, the
// missing-value marker. Never zero, never an error.
func NormalizeNumeric(value string) float64 {
	stripped := nonNumericPattern.ReplaceAllString(strings.TrimSpace(value), "")
	switch stripped {
	case "", ".", "-":
		return math.NaN()
	}
	parsed, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return math.NaN()
	}
	return parsed
}

// Missing reports whether a normalized numeric value is the missing-value
// marker.
func Missing(value float64) bool {
	return math.IsNaN(value)
}
