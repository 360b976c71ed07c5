package utils

import "go.mongodb.org/mongo-driver/bson/primitive"

// GenerateID returns a new note id. Every store uses ObjectID hex strings so
// ids look the same whichever backend is configured.
func GenerateID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id could have been produced by GenerateID.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
