package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds ids, names and headings accepted from outside.
const maxNameLength = 256

// ValidateAffiliationID validates an affiliation id supplied by a user.
//
// The rules are intentionally conservative:
//   - No empty ids
//   - No whitespace or control characters
//   - Not the reserved "---" used to signal a missing affiliation
//   - Maximum length of 256 characters
func ValidateAffiliationID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "affiliation id cannot be empty")
	}
	if len(id) > maxNameLength {
		return New(ErrCodeInvalidInput, "affiliation id too long (max %d characters)", maxNameLength)
	}
	if id == "---" {
		return New(ErrCodeInvalidInput, "affiliation id %q is reserved", id)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "affiliation id contains whitespace or control characters: %q", id)
		}
	}
	return nil
}

// ValidateName validates an affiliation name or publication heading.
// Names may contain spaces but no control characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a dataset or output path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
