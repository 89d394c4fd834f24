package service

import (
	"context"
	"time"

	"bankextract/internal/models"
	"bankextract/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatementService drives one extraction run end to end: encode the uploaded
// statement, build the fixed prompt, call the completion endpoint and
// interpret the returned text. Runs are independent and share no state.
type StatementService struct {
	client CompletionClient
	runs   *repository.RunRepository
	txs    *repository.TransactionRepository
	model  string
	logger *zap.Logger
}

// NewStatementService wires the service. The repositories may be nil, in
// which case runs are not recorded and history lookups report
// ErrHistoryDisabled.
func NewStatementService(
	client CompletionClient,
	runs *repository.RunRepository,
	txs *repository.TransactionRepository,
	model string,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		client: client,
		runs:   runs,
		txs:    txs,
		model:  model,
		logger: logger,
	}
}

// ExtractionResult is the outcome of one run. ParseErr is non-nil when the
// raw output did not form a three-column table; the raw text is still
// returned for manual inspection.
type ExtractionResult struct {
	RunID        uuid.UUID
	FileName     string
	RawOutput    string
	Transactions []models.Transaction
	ParseErr     error
}

// Extract runs the linear flow for one uploaded statement. Transport-level
// and configuration failures abort the run; a parse failure does not.
func (s *StatementService) Extract(ctx context.Context, fileName string, content []byte) (*ExtractionResult, error) {
	encoded := EncodeStatement(content)
	if encoded == "" {
		return nil, ErrNoDocument
	}

	messages := BuildExtractionPrompt(encoded)

	raw, err := s.client.Extract(ctx, messages)
	if err != nil {
		return nil, err
	}

	result := &ExtractionResult{
		RunID:     uuid.New(),
		FileName:  fileName,
		RawOutput: raw,
	}

	transactions, parseErr := ParseTransactions(raw)
	if parseErr != nil {
		s.logger.Warn("Model output did not parse into a table",
			zap.String("file", fileName),
			zap.Error(parseErr),
		)
		result.ParseErr = parseErr
	} else {
		result.Transactions = transactions
	}

	s.record(ctx, result)

	s.logger.Info("Extraction completed",
		zap.String("run_id", result.RunID.String()),
		zap.String("file", fileName),
		zap.Int("rows", len(result.Transactions)),
		zap.Bool("parsed", parseErr == nil),
	)

	return result, nil
}

// record persists the run when history is enabled. Persistence failures are
// logged and never fail the run.
func (s *StatementService) record(ctx context.Context, result *ExtractionResult) {
	if s.runs == nil {
		return
	}

	run := &models.ExtractionRun{
		ID:        result.RunID,
		FileName:  sanitizeUTF8(result.FileName),
		Model:     s.model,
		Status:    models.RunStatusParsed,
		RawOutput: sanitizeUTF8(result.RawOutput),
		RowCount:  len(result.Transactions),
		CreatedAt: time.Now(),
	}
	if result.ParseErr != nil {
		run.Status = models.RunStatusUnparsed
		run.ParseNote = result.ParseErr.Error()
	}

	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.Warn("Failed to record extraction run", zap.Error(err))
		return
	}

	if s.txs != nil && len(result.Transactions) > 0 {
		if err := s.txs.CreateBatch(ctx, run.ID, result.Transactions); err != nil {
			s.logger.Warn("Failed to record extracted transactions", zap.Error(err))
		}
	}
}

// ListRuns returns recent runs, newest first.
func (s *StatementService) ListRuns(ctx context.Context, limit, offset int) ([]*models.ExtractionRun, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.List(ctx, limit, offset)
}

// GetRun returns one recorded run with its parsed rows.
func (s *StatementService) GetRun(ctx context.Context, id uuid.UUID) (*models.ExtractionRun, []models.Transaction, error) {
	if s.runs == nil {
		return nil, nil, ErrHistoryDisabled
	}

	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var transactions []models.Transaction
	if run.Status == models.RunStatusParsed && s.txs != nil {
		transactions, err = s.txs.GetByRunID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
	}

	return run, transactions, nil
}
