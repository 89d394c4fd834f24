package repository

import (
	"context"

	"bankextract/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     DB
	logger *zap.Logger
}

func NewTransactionRepository(db DB, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch stores the parsed rows of one run, preserving source order via
// the position column.
func (r *TransactionRepository) CreateBatch(ctx context.Context, runID uuid.UUID, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	builder := squirrel.Insert("extracted_transactions").
		Columns("id", "run_id", "position", "date_text", "description", "amount_text").
		PlaceholderFormat(squirrel.Dollar)

	for i, tx := range transactions {
		builder = builder.Values(uuid.New(), runID, i, tx.Date, tx.Description, tx.Amount)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetByRunID returns the rows of one run in source order.
func (r *TransactionRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]models.Transaction, error) {
	query := squirrel.Select("date_text", "description", "amount_text").
		From("extracted_transactions").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.Date, &tx.Description, &tx.Amount); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}
