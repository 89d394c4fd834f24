package service

import (
	"bytes"
	"testing"

	"bankextract/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTransactionsXLSX(t *testing.T) {
	transactions := []models.Transaction{
		{Date: "2024-02-01", Description: "ATM Fee", Amount: "-3.50"},
		{Date: "2024-02-02", Description: "Payroll Deposit", Amount: "1500.25"},
		{Date: "2024-02-03", Description: "Unknown", Amount: "N/A"},
	}

	data, err := WriteTransactionsXLSX(transactions)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Sheet1", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Date", get("A1"))
	assert.Equal(t, "Description", get("B1"))
	assert.Equal(t, "Amount", get("C1"))

	assert.Equal(t, "2024-02-01", get("A2"))
	assert.Equal(t, "ATM Fee", get("B2"))
	assert.Equal(t, "-3.5", get("C2"))

	assert.Equal(t, "Payroll Deposit", get("B3"))
	assert.Equal(t, "1500.25", get("C3"))

	// Non-numeric amounts are kept as text.
	assert.Equal(t, "N/A", get("C4"))
}

func TestWriteTransactionsXLSX_Empty(t *testing.T) {
	data, err := WriteTransactionsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", v)
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "transactions_march.csv", DownloadName("march.pdf", "csv"))
	assert.Equal(t, "transactions_march.xlsx", DownloadName("march.pdf", "xlsx"))
	assert.Equal(t, "transactions_march.csv", DownloadName("/tmp/uploads/march.pdf", "csv"))
	assert.Equal(t, "transactions_statement.csv", DownloadName("", "csv"))
}
