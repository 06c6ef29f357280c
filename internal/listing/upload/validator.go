package upload

import (
	"errors"
	"fmt"
	"strings"
)

// MaxFileSize is the per-file ceiling, enforced before any network call.
const MaxFileSize = 5 * 1024 * 1024 // 5 MiB

var (
	ErrFileTooLarge    = errors.New("exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported type")
)

var allowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// Validate checks a candidate's metadata against the upload constraints.
// Size is checked first, then the extension allowlist; the first failure wins.
func Validate(c Candidate) error {
	if c.Size > MaxFileSize {
		return fmt.Errorf("%s: %w", c.Filename, ErrFileTooLarge)
	}
	ext := extension(c.Filename)
	if ext == "" {
		return fmt.Errorf("%s: %w", c.Filename, ErrUnsupportedType)
	}
	if _, ok := allowedExtensions[strings.ToLower(ext)]; !ok {
		return fmt.Errorf("%s: %w", c.Filename, ErrUnsupportedType)
	}
	return nil
}

// extension returns the suffix after the last dot, without the dot, or ""
// when the filename has no extension.
func extension(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}
