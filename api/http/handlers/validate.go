package handlers

import (
	"strings"
	"unicode/utf8"
)

const maxNameLen = 100

// validationError несёт текст, который уходит клиенту как есть.
type validationError string

func (e validationError) Error() string { return string(e) }

const (
	errNameEmpty   validationError = "Name cannot be empty"
	errNameTooLong validationError = "Name is too long (max 100 characters)"
	errNameChars   validationError = "Name contains invalid characters"
	errBadJSON     validationError = "invalid JSON body"
)

// IceBreakerRequest: тело запроса на генерацию.
type IceBreakerRequest struct {
	Name string `json:"name" example:"Jane Smith"`
}

// validateName returns the trimmed name. Markup and path characters are
// rejected before the name reaches prompts and search queries.
func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errNameEmpty
	}
	if utf8.RuneCountInString(raw) > maxNameLen {
		return "", errNameTooLong
	}
	if strings.ContainsAny(name, `<>{}()[]\/`) {
		return "", errNameChars
	}
	return name, nil
}
