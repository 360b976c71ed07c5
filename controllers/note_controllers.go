package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"quicknotes-server/models"
	service "quicknotes-server/services"
)

type NoteController struct {
	service *service.NoteService
}

func NewNoteController(service *service.NoteService) *NoteController {
	return &NoteController{service: service}
}

func (nc *NoteController) CreateNote(c *fiber.Ctx) error {
	in, err := parseNoteInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	note, err := nc.service.CreateNote(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (nc *NoteController) GetNotes(c *fiber.Ctx) error {
	notes, err := nc.service.ListNotes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(notes)
}

func (nc *NoteController) UpdateNote(c *fiber.Ctx) error {
	in, err := parseNoteInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	note, err := nc.service.UpdateNote(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(note)
}

func (nc *NoteController) DeleteNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := nc.service.DeleteNote(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Note deleted", "id": id})
}

func (nc *NoteController) SearchNotes(c *fiber.Ctx) error {
	notes, err := nc.service.SearchNotes(c.UserContext(), c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(notes)
}

// parseNoteInput treats an empty body as an input with no fields so it fails
// validation rather than parsing.
func parseNoteInput(c *fiber.Ctx) (models.NoteInput, error) {
	var in models.NoteInput
	if len(c.Body()) == 0 {
		return in, nil
	}
	err := c.BodyParser(&in)
	return in, err
}

// respondError maps the service error taxonomy onto status codes.
func respondError(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	var serr *models.StoreError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
	case errors.Is(err, models.ErrNoteNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	case errors.As(err, &serr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": serr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
