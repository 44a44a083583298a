package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigurationError reports unusable reference data (rate table, model
// file). It is fatal at startup and never recoverable per request.
type ConfigurationError struct {
	Source string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Source, e.Reason)
}

// MissingColumnsError reports every required column absent from a batch.
// It is raised before any row-level processing happens.
type MissingColumnsError struct {
	Missing []string `json:"missing_columns"`
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidationError maps column (or rule) names to the 1-indexed rows that
// violate them. It carries the complete set of problems so a caller can fix
// a whole batch in one round trip.
type ValidationError struct {
	Message      string           `json:"message"`
	RowsByColumn map[string][]int `json:"rows_by_column"`
}

func (e *ValidationError) Error() string {
	columns := make([]string, 0, len(e.RowsByColumn))
	for column := range e.RowsByColumn {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf("%s rows %v", column, e.RowsByColumn[column]))
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// ScoringError reports a classifier failure. ColumnTypes carries the
// resolved feature-table types for debugging; it is safe to return to
// callers, raw stack traces are not.
type ScoringError struct {
	Reason      string            `json:"reason"`
	ColumnTypes map[string]string `json:"column_types,omitempty"`
}

func (e *ScoringError) Error() string {
	return "scoring failed: " + e.Reason
}
