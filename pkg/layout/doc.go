// Package layout models the page and table layout block of the generated
// template: page model, locked typography and per-table header definitions
// with merged spans and prefilled rows.
package layout
