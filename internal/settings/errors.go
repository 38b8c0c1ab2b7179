package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTokenFormat is returned for a non-empty token without the
	// user/secret separator.
	ErrInvalidTokenFormat = errors.New("invalid auth token format")

	// ErrInvalidLimit is returned for a display limit below one.
	ErrInvalidLimit = errors.New("display limit must be a positive integer")
)

// LoadError reports that no usable record could be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading settings: %v", e.Err)
	}
	return fmt.Sprintf("loading settings from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PersistError reports that the merged record could not be written.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("saving settings: %v", e.Err)
	}
	return fmt.Sprintf("saving settings to %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// SchemaError lists the ways a stored record violates the settings schema.
type SchemaError struct {
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/pins_to_show")
	Message string
	Keyword string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "settings do not match schema: " + strings.Join(parts, "; ")
}
