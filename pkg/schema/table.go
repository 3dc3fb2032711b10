package schema

import (
	"strings"

	"github.com/goliatone/go-psurgen/pkg/widgets"
)

// TableOption customises Table construction.
type TableOption func(*tableConfig)

type tableConfig struct {
	minRows int
}

// WithMinRows overrides the minimum row count (default zero).
func WithMinRows(n int) TableOption {
	return func(cfg *tableConfig) {
		cfg.minRows = n
	}
}

// Table builds a repeating row structure: an array of closed objects whose
// properties are columns. Every name in required must be declared in
// columns; otherwise a *ConstructionError is returned and no schema is built.
func Table(required []string, columns []Property, options ...TableOption) (*Schema, error) {
	cfg := tableConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.minRows < 0 {
		return nil, constructionErrorf("", "table minimum row count must not be negative (got %d)", cfg.minRows)
	}
	if len(columns) == 0 {
		return nil, constructionErrorf("", "table declares no columns")
	}

	declared := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		name := column.Name
		if strings.TrimSpace(name) == "" {
			return nil, constructionErrorf("", "table declares a column with an empty name")
		}
		if strings.TrimSpace(name) != name {
			return nil, constructionErrorf("", "table column %q has surrounding whitespace", name)
		}
		if column.Schema == nil {
			return nil, constructionErrorf("", "table column %q has no schema", name)
		}
		if _, exists := declared[name]; exists {
			return nil, constructionErrorf("", "table declares column %q twice", name)
		}
		declared[name] = struct{}{}
	}

	var missing []string
	seen := make(map[string]struct{}, len(required))
	for _, name := range required {
		if _, dup := seen[name]; dup {
			return nil, constructionErrorf("", "table requires column %q twice", name)
		}
		seen[name] = struct{}{}
		if _, ok := declared[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, constructionErrorf("", "table required columns %s are not declared", quoteAll(missing))
	}

	row := Object(columns...)
	if len(required) > 0 {
		row.Required = append([]string(nil), required...)
	}

	table := Array(row).WithMinItems(cfg.minRows)
	return table.Widget(widgets.Table), nil
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for idx, name := range names {
		quoted[idx] = `"` + name + `"`
	}
	return strings.Join(quoted, ", ")
}
