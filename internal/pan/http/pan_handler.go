// Package http provides HTTP handlers for PAN validation, generation and generation history.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/pangen/internal/errors"
	"github.com/allisson/pangen/internal/export"
	"github.com/allisson/pangen/internal/httputil"
	"github.com/allisson/pangen/internal/pan/http/dto"
	panUseCase "github.com/allisson/pangen/internal/pan/usecase"
	customValidation "github.com/allisson/pangen/internal/validation"
)

// errHistoryDisabled is returned when a request asks to persist while history is off.
var errHistoryDisabled = apperrors.Wrap(apperrors.ErrInvalidInput, "generation history is disabled")

// PANHandler handles HTTP requests for PAN operations.
type PANHandler struct {
	generator    panUseCase.GeneratorUseCase
	orchestrator panUseCase.OrchestratorUseCase
	history      panUseCase.HistoryUseCase
	maxAttempts  int
	logger       *slog.Logger
}

// NewPANHandler creates a new PAN handler. history may be nil when generation
// history is disabled.
func NewPANHandler(
	generator panUseCase.GeneratorUseCase,
	orchestrator panUseCase.OrchestratorUseCase,
	history panUseCase.HistoryUseCase,
	maxAttempts int,
	logger *slog.Logger,
) *PANHandler {
	return &PANHandler{
		generator:    generator,
		orchestrator: orchestrator,
		history:      history,
		maxAttempts:  maxAttempts,
		logger:       logger,
	}
}

// bind parses and validates a JSON request body. It writes the error response and
// returns false on failure.
func (h *PANHandler) bind(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}

// exportFormat returns the format requested by the query string, or false after
// writing a 400 response.
func (h *PANHandler) exportFormat(c *gin.Context) (export.Format, bool) {
	name, err := httputil.ParseFormat(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return "", false
	}
	return export.Format(name), true
}

// stream writes a non-JSON export body.
func (h *PANHandler) stream(c *gin.Context, format export.Format, write func(w io.Writer) error) {
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)
	if err := write(c.Writer); err != nil {
		h.logger.Error("failed to stream export", slog.Any("error", err))
	}
}

// ValidateHandler checks a single PAN.
// POST /v1/pans/validate
func (h *PANHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidatePANRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.generator.Validate(c.Request.Context(), req.PAN)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapValidationResultToResponse(result))
}

// GenerateHandler enumerates every valid PAN of a template.
// POST /v1/pans/generate[?format=csv|lines]
func (h *PANHandler) GenerateHandler(c *gin.Context) {
	format, ok := h.exportFormat(c)
	if !ok {
		return
	}
	var req dto.GenerateRequest
	if !h.bind(c, &req) {
		return
	}

	pans, err := h.generator.Generate(c.Request.Context(), req.Template)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if format != export.FormatJSON {
		h.stream(c, format, func(w io.Writer) error {
			return export.WritePANs(w, format, pans)
		})
		return
	}
	c.JSON(http.StatusOK, dto.MapPANsToResponse(req.Template, pans))
}

// BatchHandler returns at most count valid PANs of a template.
// POST /v1/pans/batch[?format=csv|lines]
func (h *PANHandler) BatchHandler(c *gin.Context) {
	format, ok := h.exportFormat(c)
	if !ok {
		return
	}
	var req dto.BatchRequest
	if !h.bind(c, &req) {
		return
	}

	maxAttempts := h.maxAttempts
	if req.MaxAttempts != nil {
		maxAttempts = *req.MaxAttempts
	}

	pans, err := h.generator.GenerateBatch(c.Request.Context(), req.Template, req.Count, maxAttempts)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if format != export.FormatJSON {
		h.stream(c, format, func(w io.Writer) error {
			return export.WritePANs(w, format, pans)
		})
		return
	}
	c.JSON(http.StatusOK, dto.MapPANsToResponse(req.Template, pans))
}

// MultiHandler generates count PANs for each prefix after padding it to the standard length.
// POST /v1/pans/multi[?format=csv|lines]
func (h *PANHandler) MultiHandler(c *gin.Context) {
	format, ok := h.exportFormat(c)
	if !ok {
		return
	}
	var req dto.MultiRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.generator.GenerateMulti(c.Request.Context(), req.Prefixes, req.Count)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if format != export.FormatJSON {
		h.stream(c, format, func(w io.Writer) error {
			return export.WriteBatch(w, format, result)
		})
		return
	}
	c.JSON(http.StatusOK, dto.MapBatchResultToResponse(result, false))
}

// MetadataHandler generates PANs with synthetic card data and optionally stores them.
// POST /v1/pans/metadata[?format=csv|lines]
func (h *PANHandler) MetadataHandler(c *gin.Context) {
	format, ok := h.exportFormat(c)
	if !ok {
		return
	}
	var req dto.MetadataRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Persist && h.history == nil {
		httputil.HandleErrorGin(c, errHistoryDisabled, h.logger)
		return
	}

	ctx := c.Request.Context()
	records, err := h.generator.GenerateWithMetadata(ctx, req.Template, req.Count)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var batchID *string
	if req.Persist && len(records) > 0 {
		id, err := h.history.Save(ctx, req.Template, records)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		s := id.String()
		batchID = &s
		c.Header("X-Batch-Id", s)
	}

	if format != export.FormatJSON {
		h.stream(c, format, func(w io.Writer) error {
			return export.WriteMetadata(w, format, records)
		})
		return
	}

	status := http.StatusOK
	if batchID != nil {
		status = http.StatusCreated
	}
	c.JSON(status, dto.MapMetadataToResponse(records, batchID))
}

// ParallelHandler generates count PANs per template on the worker pool. When
// timeout_ms elapses, the templates that completed are returned with partial set.
// POST /v1/pans/parallel[?format=csv|lines]
func (h *PANHandler) ParallelHandler(c *gin.Context) {
	format, ok := h.exportFormat(c)
	if !ok {
		return
	}
	var req dto.ParallelRequest
	if !h.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	result, err := h.orchestrator.GenerateForTemplates(ctx, req.Templates, req.Count)
	partial := false
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) || c.Request.Context().Err() != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		partial = true
		h.logger.Warn("parallel generation deadline exceeded",
			slog.Int("templates", len(req.Templates)),
			slog.Int("completed", len(result)),
		)
	}

	if format != export.FormatJSON {
		c.Header("X-Partial", strconv.FormatBool(partial))
		h.stream(c, format, func(w io.Writer) error {
			return export.WriteBatch(w, format, result)
		})
		return
	}
	c.JSON(http.StatusOK, dto.MapBatchResultToResponse(result, partial))
}

// ListBatchHandler lists one page of a stored generation batch.
// GET /v1/pans/batches/:id?offset=&limit=
func (h *PANHandler) ListBatchHandler(c *gin.Context) {
	if h.history == nil {
		httputil.HandleErrorGin(c, errHistoryDisabled, h.logger)
		return
	}

	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid batch id: %w", err), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	records, err := h.history.List(c.Request.Context(), batchID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGenerationRecordsToListResponse(batchID.String(), records))
}
