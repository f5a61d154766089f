// Package http provides HTTP handlers for the BIN reference store.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/pangen/internal/bin/http/dto"
	binUseCase "github.com/allisson/pangen/internal/bin/usecase"
	"github.com/allisson/pangen/internal/httputil"
)

// BINHandler handles HTTP requests for BIN lookups and imports.
type BINHandler struct {
	binUseCase binUseCase.BINUseCase
	logger     *slog.Logger
}

// NewBINHandler creates a new BIN handler.
func NewBINHandler(binUseCase binUseCase.BINUseCase, logger *slog.Logger) *BINHandler {
	return &BINHandler{
		binUseCase: binUseCase,
		logger:     logger,
	}
}

// GetHandler returns the longest stored BIN that prefixes the path parameter.
// GET /v1/bins/:bin
func (h *BINHandler) GetHandler(c *gin.Context) {
	record, err := h.binUseCase.Find(c.Request.Context(), c.Param("bin"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBINRecordToResponse(record))
}

// ImportHandler loads a CSV body into the BIN store in one transaction.
// POST /v1/bins/import (Content-Type: text/csv)
func (h *BINHandler) ImportHandler(c *gin.Context) {
	imported, err := h.binUseCase.Import(c.Request.Context(), c.Request.Body)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("bins imported", slog.Int("rows", imported))
	c.JSON(http.StatusOK, dto.ImportResponse{Imported: imported})
}
