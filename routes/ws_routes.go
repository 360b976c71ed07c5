package routes

import (
	"quicknotes-server/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func WebSocketRoutes(app *fiber.App, wsController *controllers.WebSocketController) {
	app.Get("/notes/events", wsController.RequireUpgrade, websocket.New(wsController.HandleNoteEvents))
}
