package utils

import "github.com/google/uuid"

// GenerateShareCode returns the public-link code for a form.
func GenerateShareCode() string {
	return uuid.NewString()
}
