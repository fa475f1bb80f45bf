package handler

import (
	"net/http"

	"WorkshopMapDashboard/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportLogResponse struct {
	Exports []models.ExportEntry `json:"exports"`
}

type RefreshResponse struct {
	Refreshed bool   `json:"refreshed"`
	Error     string `json:"error,omitempty"`
	Rows      int    `json:"rows"`
}

// ListExports godoc
// @Summary      Recent CSV downloads
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "max entries (1-1000)"
// @Success      200 {object} handler.ExportLogResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /admin/exports [get]
func (h *Handler) ListExports(c *gin.Context) {
	limit := queryInt(c, "limit", 100, 1, 1000)
	entries, err := h.Store.ListExports(c.Request.Context(), limit)
	if err != nil {
		internalError(c, h, "Failed to read export log", err)
		return
	}
	if entries == nil {
		entries = []models.ExportEntry{}
	}
	c.JSON(http.StatusOK, ExportLogResponse{Exports: entries})
}

// Refresh godoc
// @Summary      Reload the sheet
// @Description  Drops the memoized dataset and loads the sheet again.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.RefreshResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /admin/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	refreshed := h.Dashboard.Forget()
	meta := h.Dashboard.Meta(c.Request.Context())
	h.Logger.Info("dataset refresh requested",
		zap.String("by", c.GetString("username")),
		zap.Int("rows", meta.Rows),
		zap.String("error", meta.Error))
	c.JSON(http.StatusOK, RefreshResponse{Refreshed: refreshed, Error: meta.Error, Rows: meta.Rows})
}
