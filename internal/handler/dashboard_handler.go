package handler

import (
	"bytes"
	"errors"
	"net/http"

	"WorkshopMapDashboard/internal/dashboard"
	"WorkshopMapDashboard/internal/export"
	"WorkshopMapDashboard/internal/filter"
	"WorkshopMapDashboard/internal/loader"
	"WorkshopMapDashboard/internal/models"
	"WorkshopMapDashboard/internal/render"
	"WorkshopMapDashboard/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MarkersResponse struct {
	Error string `json:"error,omitempty"`
	render.MarkerPanel
}

type HeatmapResponse struct {
	Error string `json:"error,omitempty"`
	render.HeatmapPanel
}

type CountsResponse struct {
	Error string `json:"error,omitempty"`
	render.CountsPanel
}

// Health godoc
// @Summary      Liveness check
// @Tags         System
// @Produce      json
// @Success      200 {object} object{status=string,dataset_cached=bool}
// @Router       /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dataset_cached": h.Dashboard.Cached()})
}

// Meta godoc
// @Summary      Dataset metadata
// @Description  Columns, row count, date bounds, multi-select options and the color table.
// @Tags         Dashboard
// @Produce      json
// @Success      200 {object} dashboard.Meta
// @Router       /api/meta [get]
func (h *Handler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, h.Dashboard.Meta(c.Request.Context()))
}

// Markers godoc
// @Summary      Marker map panel
// @Description  One marker per filtered record. Filters: start, end (YYYY-MM-DD) and repeated Workshop, Version, Category, Solution values.
// @Tags         Dashboard
// @Produce      json
// @Param        start    query string false "first date, inclusive"
// @Param        end      query string false "last date, inclusive"
// @Param        Category query []string false "allowed categories" collectionFormat(multi)
// @Success      200 {object} handler.MarkersResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/markers [get]
func (h *Handler) Markers(c *gin.Context) {
	spec, err := filter.FromQuery(c.Request.URL.Query(), "")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	panel, msg := h.Dashboard.Markers(c.Request.Context(), spec)
	c.JSON(http.StatusOK, MarkersResponse{Error: msg, MarkerPanel: panel})
}

// Heatmap godoc
// @Summary      Heatmap panel
// @Description  Coordinates of the filtered records. Accepts the same filters as /api/markers plus radius.
// @Tags         Dashboard
// @Produce      json
// @Param        radius query int false "decay radius"
// @Success      200 {object} handler.HeatmapResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/heatmap [get]
func (h *Handler) Heatmap(c *gin.Context) {
	spec, err := filter.FromQuery(c.Request.URL.Query(), "")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	radius := queryInt(c, "radius", 0, 0, 200)
	panel, msg := h.Dashboard.Heatmap(c.Request.Context(), spec, radius)
	c.JSON(http.StatusOK, HeatmapResponse{Error: msg, HeatmapPanel: panel})
}

// Counts godoc
// @Summary      Bar chart panel
// @Description  Record counts per distinct value of a column, highest first.
// @Tags         Dashboard
// @Produce      json
// @Param        field path string true "column name, e.g. Category"
// @Success      200 {object} handler.CountsResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/counts/{field} [get]
func (h *Handler) Counts(c *gin.Context) {
	spec, err := filter.FromQuery(c.Request.URL.Query(), "")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	panel, msg := h.Dashboard.Counts(c.Request.Context(), spec, c.Param("field"))
	c.JSON(http.StatusOK, CountsResponse{Error: msg, CountsPanel: panel})
}

// DashboardQuery godoc
// @Summary      Full dashboard from query parameters
// @Description  Map filters use plain names, heatmap filters the "heat." prefix; repeat "count" to choose bar charts.
// @Tags         Dashboard
// @Produce      json
// @Success      200 {object} dashboard.Response
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/dashboard [get]
func (h *Handler) DashboardQuery(c *gin.Context) {
	req, err := dashboard.RequestFromQuery(c.Request.URL.Query())
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.Dashboard.Build(c.Request.Context(), req))
}

// DashboardJSON godoc
// @Summary      Full dashboard
// @Description  Renders markers, heatmap and bar charts for independent map and heatmap filters.
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Param        request body dashboard.Request true "filters"
// @Success      200 {object} dashboard.Response
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/dashboard [post]
func (h *Handler) DashboardJSON(c *gin.Context) {
	var req dashboard.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, h.Dashboard.Build(c.Request.Context(), req))
}

// Export godoc
// @Summary      Download filtered CSV
// @Description  Same filters as /api/markers, or a saved view's map filter with view=<id>.
// @Tags         Dashboard
// @Produce      text/csv
// @Param        view query string false "saved view id"
// @Success      200 {file} file "CSV document"
// @Failure      400 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Failure      429 {object} handler.ErrorResponse
// @Failure      502 {object} handler.ErrorResponse "sheet could not be loaded"
// @Router       /api/export.csv [get]
func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	viewID := c.Query("view")

	var spec models.FilterSpec
	if viewID != "" && h.Store != nil {
		view, err := h.Store.GetView(ctx, viewID)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "View not found"})
			return
		}
		if err != nil {
			internalError(c, h, "Failed to load view", err)
			return
		}
		spec = view.Map
	} else {
		var err error
		if spec, err = filter.FromQuery(c.Request.URL.Query(), ""); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	var buf bytes.Buffer
	rows, err := h.Dashboard.Export(ctx, &buf, spec)
	if err != nil {
		h.Logger.Warn("export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: loader.UserMessage(err)})
		return
	}

	if h.Store != nil {
		entry := models.ExportEntry{ViewID: viewID, Rows: rows, ClientIP: c.ClientIP()}
		if err := h.Store.LogExport(ctx, entry); err != nil {
			h.Logger.Warn("export log write failed", zap.Error(err))
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(viewID)+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
