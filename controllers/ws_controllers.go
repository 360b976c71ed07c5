package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	service "quicknotes-server/services"
)

type WebSocketController struct {
	hub *service.WebSocketService
}

func NewWebSocketController(hub *service.WebSocketService) *WebSocketController {
	return &WebSocketController{hub: hub}
}

// RequireUpgrade rejects plain HTTP requests to websocket routes.
func (wsc *WebSocketController) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
}

// HandleNoteEvents streams note events until the client disconnects.
// Incoming frames are read only to notice the disconnect.
func (wsc *WebSocketController) HandleNoteEvents(c *websocket.Conn) {
	id := wsc.hub.Subscribe(c)
	logrus.Infof("Event client %s connected from %s", id, c.RemoteAddr())
	defer func() {
		wsc.hub.RemoveClient(c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			logrus.Debugf("Event client %s read: %v", id, err)
			return
		}
	}
}
