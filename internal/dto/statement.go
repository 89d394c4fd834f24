package dto

type TransactionView struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type ExtractionResponse struct {
	RunID        string            `json:"run_id"`
	FileName     string            `json:"file_name"`
	RawOutput    string            `json:"raw_output"`
	Transactions []TransactionView `json:"transactions"`
	ParseError   string            `json:"parse_error,omitempty"`
}

type RunSummary struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	Model     string `json:"model"`
	Status    string `json:"status"`
	RowCount  int    `json:"row_count"`
	CreatedAt string `json:"created_at"`
}

type RunDetail struct {
	RunSummary
	RawOutput    string            `json:"raw_output"`
	ParseNote    string            `json:"parse_note,omitempty"`
	Transactions []TransactionView `json:"transactions"`
}
