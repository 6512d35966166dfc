package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-extractor/internal/extractor"
	"github.com/insightdelivered/statement-extractor/internal/logger"
	"github.com/insightdelivered/statement-extractor/internal/metrics"
	"github.com/insightdelivered/statement-extractor/internal/models"
	"github.com/insightdelivered/statement-extractor/internal/pipeline"
)

// noTransactionsMessage is returned with an empty, successful extraction.
const noTransactionsMessage = "No transactions found. The statement layout may not be supported, or the PDF may be a scanned image."

// ExtractResponse is the JSON response from the /api/extract endpoint.
type ExtractResponse struct {
	Success         bool                     `json:"success"`
	Error           string                   `json:"error,omitempty"`
	Validation      *models.ValidationResult `json:"validation,omitempty"`
	Transactions    []models.Transaction     `json:"transactions"`
	Count           int                      `json:"count"`
	TotalRevenue    json.Number              `json:"totalRevenue"`
	TotalExpense    json.Number              `json:"totalExpense"`
	PageCount       int                      `json:"pageCount"`
	PossiblyScanned bool                     `json:"possiblyScanned"`
	Skipped         []models.SkippedLine     `json:"skipped,omitempty"`
	Message         string                   `json:"message,omitempty"`
}

// Runner runs the extraction pipeline over one PDF.
type Runner interface {
	Run(ctx context.Context, pdf []byte) (*models.Result, error)
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	runner  Runner
	metrics *metrics.Metrics
	logger  zerolog.Logger
	version string
}

// NewHandler creates a Handler. m may be nil.
func NewHandler(r Runner, m *metrics.Metrics, log zerolog.Logger, version string) *Handler {
	return &Handler{runner: r, metrics: m, logger: log, version: version}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.version,
	})
}

// HandleValidate runs the upload pre-flight check on a JSON {type,size} body.
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	var info models.FileInfo
	if err := c.BodyParser(&info); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body must be JSON with type and size")
	}
	return c.JSON(pipeline.ValidateFile(info))
}

// HandleExtract accepts a multipart upload in field "file" and returns the
// candidate transactions found in it. Pass ?skipped=true to include the
// lines the parser passed over.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	log := logger.FromContext(c.UserContext())
	start := time.Now()

	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	info := models.FileInfo{Type: fh.Header.Get(fiber.HeaderContentType), Size: fh.Size}
	if v := pipeline.ValidateFile(info); !v.IsValid {
		h.metrics.ObserveExtraction(metrics.OutcomeInvalid, time.Since(start))
		log.Info().Str("file", fh.Filename).Str("type", info.Type).Int64("size", info.Size).Str("reason", v.Error).Msg("upload rejected")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ExtractResponse{
			Success:    false,
			Error:      v.Error,
			Validation: &v,
		})
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	res, err := h.runner.Run(c.UserContext(), data)
	if err != nil {
		h.metrics.ObserveExtraction(metrics.OutcomeDecode, time.Since(start))
		log.Warn().Err(err).Str("file", fh.Filename).Msg("extraction failed")
		switch {
		case errors.Is(err, extractor.ErrPdfExtraction):
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return writeError(c, fiber.StatusRequestTimeout, "Extraction was cancelled.")
		default:
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Extraction failed: %v", err))
		}
	}

	outcome := metrics.OutcomeOK
	if len(res.Transactions) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	h.metrics.ObserveExtraction(outcome, time.Since(start))
	h.metrics.ObserveResult(res)

	// Ensure transactions is never nil (nil marshals to JSON null, not [])
	txns := res.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}

	revenue, expense := totals(txns)
	resp := ExtractResponse{
		Success:         true,
		Transactions:    txns,
		Count:           len(txns),
		TotalRevenue:    json.Number(revenue.StringFixed(2)),
		TotalExpense:    json.Number(expense.StringFixed(2)),
		PageCount:       res.PageCount,
		PossiblyScanned: res.PossiblyScanned,
	}
	if len(txns) == 0 {
		resp.Message = noTransactionsMessage
	}
	if c.QueryBool("skipped") {
		resp.Skipped = res.Skipped
	}

	log.Info().
		Str("file", fh.Filename).
		Int("pages", res.PageCount).
		Int("transactions", len(txns)).
		Dur("elapsed", time.Since(start)).
		Msg("statement extracted")

	return c.JSON(resp)
}

func totals(txns []models.Transaction) (revenue, expense decimal.Decimal) {
	for _, t := range txns {
		if t.Type == models.TypeRevenue {
			revenue = revenue.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return revenue, expense
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success: false,
		Error:   msg,
	})
}
