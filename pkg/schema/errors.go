package schema

import (
	"fmt"
	"strings"
)

// ConstructionError reports a schema that cannot be built consistently: a
// required column missing from a table, a rule naming an undeclared property,
// a dangling $ref, or a section key mismatch. Generation must stop before
// anything is written.
type ConstructionError struct {
	Path    string
	Message string
}

func (e *ConstructionError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "invalid schema"
	}
	if strings.TrimSpace(e.Path) == "" {
		return "schema: " + msg
	}
	return fmt.Sprintf("schema: %s (%s)", msg, e.Path)
}

func constructionErrorf(path, format string, args ...any) *ConstructionError {
	return &ConstructionError{Path: path, Message: fmt.Sprintf(format, args...)}
}
