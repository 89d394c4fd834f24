package models

import (
	"strconv"
	"strings"
	"time"
)

// Transaction is one extracted statement line: calendar date, free-text
// description and a signed two-decimal amount (debits negative, credits
// positive). Field values are kept exactly as parsed from the model output so
// that re-serialization reproduces them byte for byte.
type Transaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// AmountValue parses the signed decimal amount.
func (t Transaction) AmountValue() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(t.Amount), 64)
}

// DateValue parses the date, expected in YYYY-MM-DD form.
func (t Transaction) DateValue() (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(t.Date))
}
