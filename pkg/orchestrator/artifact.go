package orchestrator

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/goliatone/go-psurgen/pkg/layout"
	"github.com/goliatone/go-psurgen/pkg/schema"
	"github.com/goliatone/go-psurgen/pkg/uischema"
)

// Artifact is the generated template: the schema plus every presentation
// block renderers need. Field order is the emitted key order.
type Artifact struct {
	Meta     uischema.Meta     `json:"meta"`
	Schema   *schema.Schema    `json:"schema"`
	UISchema uischema.UISchema `json:"uiSchema"`
	Layout   layout.Layout     `json:"layout"`
	Theme    uischema.Theme    `json:"theme"`
}

// Result describes a written artifact.
type Result struct {
	Path     string
	Size     int
	Bytes    []byte
	Warnings []string
}

// Encode serializes artifact as UTF-8 JSON with the given indentation and a
// trailing newline. HTML-significant characters are written as-is.
func Encode(artifact Artifact, indent string) ([]byte, error) {
	if artifact.Schema == nil {
		return nil, errors.New("orchestrator: artifact has no schema")
	}
	return encodeJSON(artifact, indent)
}

// EncodeSchema serializes a schema on its own, formatted like Encode.
func EncodeSchema(root *schema.Schema, indent string) ([]byte, error) {
	if root == nil {
		return nil, errors.New("orchestrator: no schema to encode")
	}
	return encodeJSON(root, indent)
}

func encodeJSON(value any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses an encoded artifact.
func Decode(data []byte) (Artifact, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return Artifact{}, err
	}
	return artifact, nil
}
