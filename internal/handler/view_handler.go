package handler

import (
	"errors"
	"net/http"
	"strings"

	"WorkshopMapDashboard/internal/dashboard"
	"WorkshopMapDashboard/internal/models"
	"WorkshopMapDashboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type CreateViewRequest struct {
	Name        string            `json:"name" binding:"required" example:"Parking, spring workshops"`
	Map         models.FilterSpec `json:"map"`
	Heatmap     models.FilterSpec `json:"heatmap"`
	CountFields []string          `json:"count_fields"`
}

type ViewResponse struct {
	models.SavedView
	ShareURL string `json:"share_url"`
}

type ViewListResponse struct {
	Views []ViewResponse `json:"views"`
}

// ShareURL links to /api/dashboard with the view's filters encoded in the
// query string, so the link renders without a lookup.
func (h *Handler) ShareURL(v models.SavedView) string {
	req := dashboard.Request{Map: v.Map, Heatmap: v.Heatmap, CountFields: v.CountFields}
	q := req.Query()
	q.Set("view", v.ID)
	return strings.TrimRight(h.BaseURL, "/") + "/api/dashboard?" + q.Encode()
}

func (h *Handler) viewResponse(v models.SavedView) ViewResponse {
	return ViewResponse{SavedView: v, ShareURL: h.ShareURL(v)}
}

func (h *Handler) lookupView(c *gin.Context) (models.SavedView, bool) {
	v, err := h.Store.GetView(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "View not found"})
		return v, false
	}
	if err != nil {
		internalError(c, h, "Failed to load view", err)
		return v, false
	}
	return v, true
}

// GetView godoc
// @Summary      Load a saved view
// @Tags         Views
// @Produce      json
// @Param        id path string true "view id"
// @Success      200 {object} handler.ViewResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/views/{id} [get]
func (h *Handler) GetView(c *gin.Context) {
	v, ok := h.lookupView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.viewResponse(v))
}

// ViewQRCode godoc
// @Summary      QR code of a saved view's share link
// @Tags         Views
// @Produce      png
// @Param        id   path  string true  "view id"
// @Param        size query int    false "edge length in pixels (128-1024)"
// @Success      200 {file} file "PNG image"
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/views/{id}/qr.png [get]
func (h *Handler) ViewQRCode(c *gin.Context) {
	v, ok := h.lookupView(c)
	if !ok {
		return
	}
	size := queryInt(c, "size", 256, 128, 1024)
	png, err := qrcode.Encode(h.ShareURL(v), qrcode.Medium, size)
	if err != nil {
		internalError(c, h, "Failed to render QR code", err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// ListViews godoc
// @Summary      List saved views
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.ViewListResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /admin/views [get]
func (h *Handler) ListViews(c *gin.Context) {
	views, err := h.Store.ListViews(c.Request.Context())
	if err != nil {
		internalError(c, h, "Failed to list views", err)
		return
	}
	out := make([]ViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, h.viewResponse(v))
	}
	c.JSON(http.StatusOK, ViewListResponse{Views: out})
}

// CreateView godoc
// @Summary      Save the current filters as a named view
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.CreateViewRequest true "view"
// @Success      201 {object} handler.ViewResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Router       /admin/views [post]
func (h *Handler) CreateView(c *gin.Context) {
	var req CreateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "Name cannot be empty")
		return
	}

	v, err := h.Store.CreateView(c.Request.Context(), models.SavedView{
		Name:        strings.TrimSpace(req.Name),
		Map:         req.Map,
		Heatmap:     req.Heatmap,
		CountFields: req.CountFields,
		CreatedBy:   c.GetString("username"),
	})
	if err != nil {
		internalError(c, h, "Failed to save view", err)
		return
	}
	h.Logger.Info("view saved", zap.String("id", v.ID), zap.String("by", v.CreatedBy))
	c.JSON(http.StatusCreated, h.viewResponse(v))
}

// DeleteView godoc
// @Summary      Delete a saved view
// @Tags         Admin
// @Security     BearerAuth
// @Param        id path string true "view id"
// @Success      204
// @Failure      404 {object} handler.ErrorResponse
// @Router       /admin/views/{id} [delete]
func (h *Handler) DeleteView(c *gin.Context) {
	err := h.Store.DeleteView(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "View not found"})
		return
	}
	if err != nil {
		internalError(c, h, "Failed to delete view", err)
		return
	}
	c.Status(http.StatusNoContent)
}
