package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"bankextract/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WriteTransactionsXLSX renders parsed rows as a single-sheet workbook.
// Amounts that parse as numbers are written as numeric cells so spreadsheet
// tools can sum them; anything else is written as text.
func WriteTransactionsXLSX(transactions []models.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(exportSheet, "A1", &[]any{"Date", "Description", "Amount"}); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, tx := range transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		var amount any = tx.Amount
		if v, err := tx.AmountValue(); err == nil {
			amount = v
		}

		if err := f.SetSheetRow(exportSheet, cell, &[]any{tx.Date, tx.Description, amount}); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// DownloadName derives the export filename from the uploaded statement's base
// name: transactions_<base>.<ext>.
func DownloadName(fileName, ext string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "statement"
	}
	return "transactions_" + base + "." + ext
}
