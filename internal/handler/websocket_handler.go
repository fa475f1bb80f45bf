package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"WorkshopMapDashboard/internal/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsMaxMessage = 64 << 10
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DashboardSocket godoc
// @Summary      Live dashboard over WebSocket
// @Description  Each text message is a JSON dashboard.Request; the server answers every message with a dashboard.Response.
// @Description  Connect with the `ws://` or `wss://` scheme. Malformed messages get `{"error": "..."}` and the session continues.
// @Tags         WebSocket
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      400 {object} handler.ErrorResponse
// @Router       /ws/dashboard [get]
func (h *Handler) DashboardSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.manageDashboardSession(c.Request.Context(), conn, c.ClientIP())
}

func (h *Handler) manageDashboardSession(ctx context.Context, conn *websocket.Conn, client string) {
	defer conn.Close()
	logger := h.Logger.With(zap.String("client", client))
	logger.Info("dashboard session started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	responses := make(chan any, 4)
	done := make(chan struct{})

	// writer, the only goroutine that writes to conn
	go func() {
		defer close(done)
		// unblock the reader when writing fails
		defer conn.Close()
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-responses:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
				if err := conn.WriteJSON(msg); err != nil {
					logger.Warn("websocket write failed", zap.Error(err))
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage {
			logger.Debug("ignoring non-text message", zap.Int("type", messageType))
			continue
		}

		var out any
		var req dashboard.Request
		if err := json.Unmarshal(message, &req); err != nil {
			out = ErrorResponse{Error: "Invalid request: " + err.Error()}
		} else {
			out = h.Dashboard.Build(ctx, req)
		}

		select {
		case responses <- out:
		case <-done:
			break ReadLoop
		}
	}
	cancel()
	close(responses)
	<-done
	logger.Info("dashboard session ended")
}
