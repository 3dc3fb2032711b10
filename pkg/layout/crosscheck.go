package layout

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-psurgen/pkg/schema"
)

// Binding ties a table layout identifier to the TableSchema it renders.
// Identifiers are renderer-facing names and differ from schema paths, so the
// link is explicit. When MatchColumns is set every layout column key must be
// a declared row property; tables whose layout regroups columns (nested
// period cells, stacked rate/count cells) leave it unset.
type Binding struct {
	Table        string
	Pointer      string
	MatchColumns bool
}

// Issue is a single layout/schema inconsistency.
type Issue struct {
	Table   string
	Pointer string
	Message string
}

func (i Issue) Error() string {
	if i.Pointer == "" {
		return fmt.Sprintf("layout: table %q: %s", i.Table, i.Message)
	}
	return fmt.Sprintf("layout: table %q: %s (%s)", i.Table, i.Message, i.Pointer)
}

// CrossCheck verifies that every table layout is bound to a TableSchema in
// root, that bound column keys exist, and that prefilled row labels are
// accepted by the first column. It reports issues instead of failing so the
// caller can choose between strict and lenient handling.
func CrossCheck(root *schema.Schema, tables Tables, bindings []Binding) []Issue {
	var issues []Issue

	byTable := make(map[string]Binding, len(bindings))
	for _, binding := range bindings {
		if _, dup := byTable[binding.Table]; dup {
			issues = append(issues, Issue{Table: binding.Table, Pointer: binding.Pointer, Message: "bound more than once"})
			continue
		}
		byTable[binding.Table] = binding
		if _, ok := tables.Get(binding.Table); !ok {
			issues = append(issues, Issue{Table: binding.Table, Pointer: binding.Pointer, Message: "binding names an unknown table layout"})
		}
	}

	for _, table := range tables {
		binding, ok := byTable[table.ID]
		if !ok || strings.TrimSpace(binding.Pointer) == "" {
			issues = append(issues, Issue{Table: table.ID, Message: "no schema binding"})
			continue
		}
		target, err := schema.Lookup(root, binding.Pointer)
		if err != nil {
			issues = append(issues, Issue{Table: table.ID, Pointer: binding.Pointer, Message: "binding does not resolve to a declared schema"})
			continue
		}
		if !target.IsTable() {
			issues = append(issues, Issue{Table: table.ID, Pointer: binding.Pointer, Message: "binding target is not a table schema"})
			continue
		}

		row := target.Items
		if binding.MatchColumns {
			for _, key := range table.Keys() {
				if !row.Properties.Has(key) {
					issues = append(issues, Issue{Table: table.ID, Pointer: binding.Pointer, Message: fmt.Sprintf("column %q is not a declared row property", key)})
				}
			}
		}

		if len(table.PrefillRows) > 0 {
			issues = append(issues, checkPrefill(root, table, binding, row)...)
		}
	}
	return issues
}

func checkPrefill(root *schema.Schema, table TableLayout, binding Binding, row *schema.Schema) []Issue {
	if len(table.Columns) == 0 {
		return nil
	}
	first := table.Columns[0].Key
	column, ok := row.Properties.Get(first)
	if !ok {
		return []Issue{{Table: table.ID, Pointer: binding.Pointer, Message: fmt.Sprintf("prefilled column %q is not a declared row property", first)}}
	}
	if column.Ref != "" {
		if resolved, err := schema.Lookup(root, column.Ref); err == nil {
			column = resolved
		}
	}
	if len(column.Enum) == 0 {
		return nil
	}
	var issues []Issue
	for _, label := range table.PrefillRows {
		if !accepts(column.Enum, label) {
			issues = append(issues, Issue{Table: table.ID, Pointer: binding.Pointer, Message: fmt.Sprintf("prefill row %q is not an allowed %s value", label, first)})
		}
	}
	return issues
}

func accepts(values []any, candidate string) bool {
	for _, value := range values {
		if reflect.DeepEqual(value, candidate) {
			return true
		}
	}
	return false
}
