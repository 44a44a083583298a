// Package rates loads the interest-rate reference table used to enrich
// every scored application. The table is read once at startup and is
// immutable afterwards, so concurrent readers need no locking.
package rates

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Table maps calendar years to observed interest rates.
type Table struct {
	byYear     map[int]float64
	latestYear int
}

// Load reads a CSV rate source with at least the columns year and
// obs_value. It fails with a ConfigurationError when either column is
// absent or the source holds no usable rows.
func Load(path string) (*Table, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate source: %w", err)
	}
	return Parse(payload, path)
}

// Parse builds a Table from raw CSV bytes. Source only labels errors.
func Parse(payload []byte, source string) (*Table, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rate source: %w", err)
	}
	if len(records) == 0 {
		return nil, &domain.ConfigurationError{Source: source, Reason: "rate source is empty"}
	}

	yearIdx, valueIdx := -1, -1
	for idx, header := range records[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "year":
			yearIdx = idx
		case "obs_value":
			valueIdx = idx
		}
	}
	if yearIdx < 0 || valueIdx < 0 {
		return nil, &domain.ConfigurationError{
			Source: source,
			Reason: "expected columns year and obs_value",
		}
	}

	table := &Table{byYear: make(map[int]float64)}
	for _, record := range records[1:] {
		if yearIdx >= len(record) || valueIdx >= len(record) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[yearIdx]))
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			continue
		}
		table.byYear[year] = value
		if year > table.latestYear {
			table.latestYear = year
		}
	}

	if len(table.byYear) == 0 {
		return nil, &domain.ConfigurationError{Source: source, Reason: "rate source holds no usable rows"}
	}
	return table, nil
}

// RateFor resolves the rate for a year: the exact match when present,
// otherwise the most recent known rate. It cannot fail once Load succeeded.
func (t *Table) RateFor(year int) float64 {
	if rate, ok := t.byYear[year]; ok {
		return rate
	}
	return t.byYear[t.latestYear]
}

// Years returns how many distinct years the table covers.
func (t *Table) Years() int {
	return len(t.byYear)
}
