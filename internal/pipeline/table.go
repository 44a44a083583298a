package pipeline

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when an uploaded file is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// RawTable is a parsed upload: trimmed headers plus untyped cell rows.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// RawRows re-keys the table rows by column name for the normalizer.
func (t *RawTable) RawRows() []domain.RawRow {
	rows := make([]domain.RawRow, len(t.Rows))
	for i, row := range t.Rows {
		mapped := make(domain.RawRow, len(t.Headers))
		for j, header := range t.Headers {
			if j < len(row) {
				mapped[header] = row[j]
			} else {
				mapped[header] = ""
			}
		}
		rows[i] = mapped
	}
	return rows
}

// ParseUpload decodes an uploaded batch file by extension. CSV and XLSX are
// supported.
func ParseUpload(fileName string, payload []byte) (*RawTable, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx", ".xls":
		return parseExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(payload []byte) (*RawTable, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comma = sniffDelimiter(payload)

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return buildTable(records)
}

func parseExcel(payload []byte) (*RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return buildTable(rows)
}

// sniffDelimiter picks between comma and semicolon based on the header
// line. French-locale spreadsheet exports use semicolons.
func sniffDelimiter(payload []byte) rune {
	line := payload
	if idx := bytes.IndexByte(payload, '\n'); idx >= 0 {
		line = payload[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func buildTable(records [][]string) (*RawTable, error) {
	if len(records) == 0 {
		return nil, errors.New("no rows found in file")
	}

	var headerRow []string
	var dataRows [][]string
	for _, row := range records {
		if isEmptyRow(row) {
			continue
		}
		if headerRow == nil {
			headerRow = row
			continue
		}
		dataRows = append(dataRows, row)
	}
	if headerRow == nil {
		return nil, errors.New("header row could not be detected")
	}

	headers := make([]string, len(headerRow))
	for i, value := range headerRow {
		headers[i] = strings.TrimSpace(value)
	}

	for i := range dataRows {
		dataRows[i] = padRow(dataRows[i], len(headers))
	}

	return &RawTable{Headers: headers, Rows: dataRows}, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}
