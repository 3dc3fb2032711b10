// Package jsonschema inspects serialized JSON Schema documents in their
// generic decoded form. CheckRefs confirms a document is self-contained:
// every $ref must land on a node of the same document.
package jsonschema
