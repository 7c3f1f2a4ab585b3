package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentity validates an externally assigned node or edge identity.
// Identities are opaque: only empty or whitespace-only values are rejected.
//
// The kind argument ("node", "edge") is used in the error message only.
func ValidateIdentity(kind, id string) error {
	code := ErrCodeInvalidNode
	if kind == "edge" {
		code = ErrCodeInvalidEdge
	}

	if strings.TrimSpace(id) == "" {
		return New(code, "%s identity cannot be empty", kind)
	}

	return nil
}

// ValidatePath validates a path given on the command line or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
