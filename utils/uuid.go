package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new random identifier string, used for user ids.
func GenerateID() string {
	return uuid.New().String()
}
