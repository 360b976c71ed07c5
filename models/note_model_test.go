package models

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      NoteInput
		missing []string
	}{
		{"valid", NoteInput{Title: "Work", Content: "finish report"}, nil},
		{"no title", NoteInput{Content: "x"}, []string{"title"}},
		{"no content", NoteInput{Title: "x"}, []string{"content"}},
		{"empty both", NoteInput{}, []string{"title", "content"}},
		{"whitespace is content", NoteInput{Title: " ", Content: "\t"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.missing == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.missing, verr.Fields)
			assert.Equal(t, "Title and content are required", verr.Message)
		})
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&StoreError{Op: "creating note", Err: cause})

	assert.Equal(t, "Error creating note: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
}
