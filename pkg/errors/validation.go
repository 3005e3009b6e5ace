package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxColumnName bounds column selector length.
const maxColumnName = 256

// ValidateColumnName validates a column selector.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 bytes
//
// Surrounding whitespace is significant in column names and is not trimmed.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeMissingColumn, "column name cannot be empty")
	}

	if len(name) > maxColumnName {
		return New(ErrCodeInvalidInput, "column name too long (max %d characters)", maxColumnName)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateInputPath validates a path to a tabular input file.
// It rejects empty paths and null bytes, and requires one of the supported
// extensions (.csv, .tsv, .json).
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "input path contains null byte")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".json":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "input path %q has no extension", path)
	default:
		return New(ErrCodeInvalidFormat, "unsupported input extension %q (must be .csv, .tsv or .json)", ext)
	}
}
