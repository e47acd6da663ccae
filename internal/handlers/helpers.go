package handlers

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

func isValidUsername(value string) bool {
	return value != "" && len(value) <= 150 && usernamePattern.MatchString(value)
}
