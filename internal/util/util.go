package util

import (
	"github.com/google/uuid"
)

// RandomEmail generates a unique email address for tests
func RandomEmail() string {
	return uuid.New().String() + "@test.pixelcards.io"
}
