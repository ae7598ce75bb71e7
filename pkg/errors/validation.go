package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a column binding supplied by the caller.
// Column names address columns in the caller's table; the rules here are
// intentionally conservative and independent of any particular file format.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidConfig, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "column name %q contains control characters", name)
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for plot artifacts.
// It rejects empty paths and paths with embedded null bytes; everything
// else is left to the OS.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidConfig, "output path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidConfig, "output path contains invalid characters")
	}

	return nil
}
