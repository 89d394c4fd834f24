package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"

	"bankextract/internal/models"
)

var csvHeader = []string{"Date", "Description", "Amount"}

// ParseTransactions parses the model's raw output as a comma-separated table
// whose first row is a header and whose records carry exactly three fields.
// The input is untrusted: markdown code fences around the table are tolerated,
// but anything that does not read as three-column CSV yields a *ParseError.
// Field values are kept as-is so that serialization round-trips them.
func ParseTransactions(raw string) ([]models.Transaction, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return nil, &ParseError{Cause: errors.New("empty output")}
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Cause: errors.New("no header row")}
	}

	// The first row is the header; its spelling and case are not validated
	// beyond being part of a well-formed table.
	rows := records[1:]

	transactions := make([]models.Transaction, 0, len(rows))
	for _, rec := range rows {
		transactions = append(transactions, models.Transaction{
			Date:        rec[0],
			Description: rec[1],
			Amount:      rec[2],
		})
	}

	return transactions, nil
}

// WriteTransactionsCSV serializes rows back into a delimited file with the
// canonical header. Field values are written exactly as parsed.
func WriteTransactionsCSV(transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, tx := range transactions {
		if err := w.Write([]string{tx.Date, tx.Description, tx.Amount}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// stripCodeFence removes a surrounding markdown code block, which some models
// wrap tabular answers in despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```csv")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
