package handler

import (
	"os"

	"po-intake-be/internal/pkg/logger"
	internalWS "po-intake-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ProgressHandler upgrades websocket connections onto the saga progress feed
// of one submission.
type ProgressHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewProgressHandler(hub *internalWS.Hub, log logger.ILogger) *ProgressHandler {
	return &ProgressHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *ProgressHandler) ServeWs(c *fiber.Ctx) error {
	// Token source priority: query param (browser standard), then the
	// Authorization header for non-browser clients.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("ProgressHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	correlationId, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission id"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ProgressHandler", "Starting WebSocket session", map[string]interface{}{"correlation_id": correlationId})
			internalWS.ServeWs(h.hub, conn, correlationId)
			h.logger.Info("ProgressHandler", "WebSocket session ended", map[string]interface{}{"correlation_id": correlationId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/intake/:id", h.ServeWs)
}
