package handlers

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"bankextract/internal/dto"
	"bankextract/internal/models"
	"bankextract/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatementHandler struct {
	svc    *service.StatementService
	logger *zap.Logger
}

func NewStatementHandler(svc *service.StatementService, logger *zap.Logger) *StatementHandler {
	return &StatementHandler{
		svc:    svc,
		logger: logger,
	}
}

// ExtractStatement accepts one uploaded PDF statement and runs the extraction
// flow. A parse failure is reported in the response body, not as an HTTP
// error: the raw model output stays available either way.
func (h *StatementHandler) ExtractStatement(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF statements are supported",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	result, err := h.svc.Extract(c.Context(), file.Filename, content)
	if err != nil {
		return h.extractionError(c, err)
	}

	resp := dto.ExtractionResponse{
		RunID:        result.RunID.String(),
		FileName:     result.FileName,
		RawOutput:    result.RawOutput,
		Transactions: toViews(result.Transactions),
	}
	if result.ParseErr != nil {
		resp.ParseError = result.ParseErr.Error()
	}

	return c.JSON(resp)
}

// ListRuns returns recorded runs, newest first.
func (h *StatementHandler) ListRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	runs, err := h.svc.ListRuns(c.Context(), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Run history is disabled",
			})
		}
		h.logger.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list runs",
		})
	}

	summaries := make([]dto.RunSummary, len(runs))
	for i, run := range runs {
		summaries[i] = toSummary(run)
	}

	return c.JSON(summaries)
}

// GetRun returns one recorded run with its parsed rows.
func (h *StatementHandler) GetRun(c *fiber.Ctx) error {
	run, transactions, respErr := h.loadRun(c)
	if run == nil {
		return respErr
	}

	detail := dto.RunDetail{
		RunSummary:   toSummary(run),
		RawOutput:    run.RawOutput,
		ParseNote:    run.ParseNote,
		Transactions: toViews(transactions),
	}

	return c.JSON(detail)
}

// DownloadRun serves a recorded run as a downloadable file. Parsed runs are
// re-serialized as CSV (or rendered as XLSX); unparsed runs are served as the
// raw model output so the text stays usable for manual inspection.
func (h *StatementHandler) DownloadRun(c *fiber.Ctx) error {
	run, transactions, respErr := h.loadRun(c)
	if run == nil {
		return respErr
	}

	if run.Status != models.RunStatusParsed {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.DownloadName(run.FileName, "txt")+`"`)
		return c.SendString(run.RawOutput)
	}

	switch c.Query("format", "csv") {
	case "csv":
		data, err := service.WriteTransactionsCSV(transactions)
		if err != nil {
			h.logger.Error("Failed to serialize CSV", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to serialize CSV",
			})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.DownloadName(run.FileName, "csv")+`"`)
		return c.Send(data)
	case "xlsx":
		data, err := service.WriteTransactionsXLSX(transactions)
		if err != nil {
			h.logger.Error("Failed to serialize XLSX", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to serialize XLSX",
			})
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.DownloadName(run.FileName, "xlsx")+`"`)
		return c.Send(data)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported format, use csv or xlsx",
		})
	}
}

// loadRun resolves the :id parameter and fetches the run. On failure it
// writes the error response and returns a nil run.
func (h *StatementHandler) loadRun(c *fiber.Ctx) (*models.ExtractionRun, []models.Transaction, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid run ID",
		})
	}

	run, transactions, err := h.svc.GetRun(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			return nil, nil, c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Run history is disabled",
			})
		}
		return nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Run not found",
		})
	}

	return run, transactions, nil
}

// extractionError maps the failure taxonomy onto HTTP statuses: missing
// credential 503, transport and shape failures 502, empty upload 400.
func (h *StatementHandler) extractionError(c *fiber.Ctx, err error) error {
	var configErr *service.ConfigError
	var transportErr *service.TransportError
	var shapeErr *service.ResponseShapeError

	switch {
	case errors.Is(err, service.ErrNoDocument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Uploaded file is empty",
		})
	case errors.As(err, &configErr):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": configErr.Error(),
		})
	case errors.As(err, &transportErr):
		h.logger.Error("Completion request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": transportErr.Error(),
		})
	case errors.As(err, &shapeErr):
		h.logger.Error("Unexpected completion response", zap.String("body", shapeErr.Body))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    shapeErr.Error(),
			"raw_body": shapeErr.Body,
		})
	default:
		h.logger.Error("Extraction failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Extraction failed",
		})
	}
}

func toViews(transactions []models.Transaction) []dto.TransactionView {
	views := make([]dto.TransactionView, len(transactions))
	for i, tx := range transactions {
		views[i] = dto.TransactionView{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount,
		}
	}
	return views
}

func toSummary(run *models.ExtractionRun) dto.RunSummary {
	return dto.RunSummary{
		ID:        run.ID.String(),
		FileName:  run.FileName,
		Model:     run.Model,
		Status:    string(run.Status),
		RowCount:  run.RowCount,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
	}
}
