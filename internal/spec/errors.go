package spec

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrBlankGroupName       = errors.New("spec name is required")
	ErrInvalidOptionValue   = errors.New("spec value must not contain a comma")
	ErrDuplicateOptionValue = errors.New("spec value already exists in this spec")
	ErrGroupIndex           = errors.New("spec index out of range")
	ErrOptionNotFound       = errors.New("spec value not found")
	ErrRowNotFound          = errors.New("sku not found")
	ErrTooManyRows          = errors.New("too many sku combinations")
	ErrEmptySelection       = errors.New("select at least one sku first")
	ErrBatchClosed          = errors.New("batch edit dialog is not open")
)

// ValidationError reports per-field problems of a row or batch patch.
// Fields is keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}
