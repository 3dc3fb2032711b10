// Package uischema loads the presentation document that accompanies the
// generated schema and builds the meta, theme and UI schema blocks from it.
// Section order is never authored here: it is taken from the schema
// builder's section keys so both sides cannot drift. Display strings are
// policed as plain text because renderers insert them verbatim.
package uischema
