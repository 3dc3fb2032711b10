// Package widgets names the input widgets a renderer is expected to provide
// for the PSUR template. Schema builders attach these identifiers as UI hints;
// the assembler rejects identifiers outside this set.
package widgets

import "sort"

// Built-in widget identifiers.
const (
	Text     = "text"
	Textarea = "textarea"
	Select   = "select"
	Checkbox = "checkbox"
	Date     = "date"
	Number   = "number"
	Table    = "table"
)

// HierarchicalTable is the custom field renderer used for tables whose rows
// nest medical device problems under a harm.
const HierarchicalTable = "HierarchicalTable"

var known = map[string]struct{}{
	Text:     {},
	Textarea: {},
	Select:   {},
	Checkbox: {},
	Date:     {},
	Number:   {},
	Table:    {},
}

// Known reports whether name is a built-in widget identifier.
func Known(name string) bool {
	_, ok := known[name]
	return ok
}

// Names returns the built-in identifiers sorted alphabetically.
func Names() []string {
	out := make([]string, 0, len(known))
	for name := range known {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
