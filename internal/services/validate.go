package services

import "errors"

// ErrEmptyContent is recoverable: handlers turn it into a form
// re-render, never a server error.
var ErrEmptyContent = errors.New("post text must not be empty")

// ValidateText rejects exactly the empty string. Whitespace-only text
// counts as content and is accepted.
func ValidateText(text string) error {
	if text == "" {
		return ErrEmptyContent
	}
	return nil
}
