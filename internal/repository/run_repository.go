package repository

import (
	"context"

	"bankextract/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RunRepository struct {
	db     DB
	logger *zap.Logger
}

func NewRunRepository(db DB, logger *zap.Logger) *RunRepository {
	return &RunRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RunRepository) Create(ctx context.Context, run *models.ExtractionRun) error {
	query := squirrel.Insert("extraction_runs").
		Columns("id", "file_name", "model", "status", "raw_output", "row_count", "parse_note", "created_at").
		Values(run.ID, run.FileName, run.Model, run.Status, run.RawOutput, run.RowCount, run.ParseNote, run.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ExtractionRun, error) {
	query := squirrel.Select("id", "file_name", "model", "status", "raw_output", "row_count", "parse_note", "created_at").
		From("extraction_runs").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var run models.ExtractionRun
	if err := r.db.QueryRow(ctx, sql, args...).Scan(
		&run.ID, &run.FileName, &run.Model, &run.Status, &run.RawOutput, &run.RowCount, &run.ParseNote, &run.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *RunRepository) List(ctx context.Context, limit, offset int) ([]*models.ExtractionRun, error) {
	query := squirrel.Select("id", "file_name", "model", "status", "raw_output", "row_count", "parse_note", "created_at").
		From("extraction_runs").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
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

	var runs []*models.ExtractionRun
	for rows.Next() {
		var run models.ExtractionRun
		if err := rows.Scan(
			&run.ID, &run.FileName, &run.Model, &run.Status, &run.RawOutput, &run.RowCount, &run.ParseNote, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
