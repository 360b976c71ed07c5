package models

import "time"

type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoteInput is the body accepted by create and update.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate requires both fields to be present. Whitespace is content.
func (in NoteInput) Validate() error {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: "Title and content are required"}
	}
	return nil
}

// NoteEvent is broadcast to websocket subscribers after a successful write.
type NoteEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Note *Note  `json:"note,omitempty"`
}

const (
	NoteCreated = "created"
	NoteUpdated = "updated"
	NoteDeleted = "deleted"
)
