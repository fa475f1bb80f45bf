/**
* Name:         handler.go
* Description:  gin handlers for the workshop map dashboard
* Workflow:     dataset metadata, panels, export, saved views, admin
 */
package handler

import (
	"net/http"
	"strconv"

	"WorkshopMapDashboard/internal/auth"
	"WorkshopMapDashboard/internal/dashboard"
	"WorkshopMapDashboard/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds what the HTTP routes need.
type Handler struct {
	Dashboard *dashboard.Service
	Store     *storage.Store
	Tokens    *auth.Tokens
	BaseURL   string
	Logger    *zap.Logger
}

// New builds a Handler. logger may be nil.
func New(svc *dashboard.Service, store *storage.Store, tokens *auth.Tokens, baseURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Dashboard: svc, Store: store, Tokens: tokens, BaseURL: baseURL, Logger: logger}
}

type SuccessResponse struct {
	Message string `json:"message" example:"User created successfully"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"invalid date \"01/02/2024\": want YYYY-MM-DD"`
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func internalError(c *gin.Context, h *Handler, msg string, err error) {
	h.Logger.Error(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}

func queryInt(c *gin.Context, key string, def, min, max int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
