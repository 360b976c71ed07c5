package routes

import (
	"quicknotes-server/controllers"

	"github.com/gofiber/fiber/v2"
)

func NoteRoutes(app *fiber.App, noteController *controllers.NoteController) {
	app.Post("/notes", noteController.CreateNote)
	app.Get("/notes", noteController.GetNotes)
	app.Get("/notes/search", noteController.SearchNotes)
	app.Put("/notes/:id", noteController.UpdateNote)
	app.Delete("/notes/:id", noteController.DeleteNote)
}
