package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"bankextract/internal/api"
	"bankextract/internal/api/handlers"
	"bankextract/internal/dto"
	"bankextract/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClient struct {
	response string
	err      error
}

func (s *stubClient) Extract(_ context.Context, _ []service.ChatMessage) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestApp(client service.CompletionClient) *fiber.App {
	logger := zap.NewNop()
	svc := service.NewStatementService(client, nil, nil, "openai/gpt-4o", logger)
	handler := handlers.NewStatementHandler(svc, logger)
	return api.SetupRouter(handler, logger)
}

func uploadRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/extract", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestExtractStatement_Success(t *testing.T) {
	app := newTestApp(&stubClient{
		response: "Date,Description,Amount\n2024-02-01,ATM Fee,-3.00\n2024-02-01,Coffee Shop,-4.50",
	})

	resp, err := app.Test(uploadRequest(t, "march.pdf", []byte("%PDF-1.7 statement")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ExtractionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.NotEmpty(t, body.RunID)
	assert.Equal(t, "march.pdf", body.FileName)
	assert.Empty(t, body.ParseError)
	require.Len(t, body.Transactions, 2)
	assert.Equal(t, "ATM Fee", body.Transactions[0].Description)
	assert.Equal(t, "-4.50", body.Transactions[1].Amount)
}

func TestExtractStatement_ParseFailureStillSucceeds(t *testing.T) {
	app := newTestApp(&stubClient{response: "The document could not be read."})

	resp, err := app.Test(uploadRequest(t, "march.pdf", []byte("%PDF-1.7")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ExtractionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.NotEmpty(t, body.ParseError)
	assert.Equal(t, "The document could not be read.", body.RawOutput)
	assert.Empty(t, body.Transactions)
}

func TestExtractStatement_MissingFile(t *testing.T) {
	app := newTestApp(&stubClient{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/extract", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractStatement_RejectsNonPDF(t *testing.T) {
	app := newTestApp(&stubClient{})

	resp, err := app.Test(uploadRequest(t, "march.csv", []byte("Date,Description,Amount")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractStatement_EmptyFile(t *testing.T) {
	app := newTestApp(&stubClient{})

	resp, err := app.Test(uploadRequest(t, "march.pdf", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractStatement_MissingCredential(t *testing.T) {
	app := newTestApp(&stubClient{err: &service.ConfigError{Reason: "OPENROUTER_API_KEY is not set"}})

	resp, err := app.Test(uploadRequest(t, "march.pdf", []byte("%PDF-1.7")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestExtractStatement_UpstreamFailure(t *testing.T) {
	app := newTestApp(&stubClient{err: &service.TransportError{Status: 500, Body: "upstream broke"}})

	resp, err := app.Test(uploadRequest(t, "march.pdf", []byte("%PDF-1.7")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestExtractStatement_BadResponseShape(t *testing.T) {
	app := newTestApp(&stubClient{err: &service.ResponseShapeError{Body: `{"unexpected":true}`}})

	resp, err := app.Test(uploadRequest(t, "march.pdf", []byte("%PDF-1.7")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, `{"unexpected":true}`, body["raw_body"], "raw body stays available for inspection")
}

func TestListRuns_HistoryDisabled(t *testing.T) {
	app := newTestApp(&stubClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(&stubClient{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
