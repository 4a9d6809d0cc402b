package handler

import (
	"ats-scheduler-be/internal/pkg/logger"
	internalWS "ats-scheduler-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// DashboardHandler upgrades dashboard connections and attaches them to the
// hub for live outcome events.
type DashboardHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewDashboardHandler(hub *internalWS.Hub, log logger.ILogger) *DashboardHandler {
	return &DashboardHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *DashboardHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("DashboardHandler", "Starting WebSocket session", nil)
			internalWS.ServeWs(h.hub, conn)
			h.logger.Info("DashboardHandler", "WebSocket session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the dashboard websocket route.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/dashboard", h.ServeWs)
}
