package schema

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/goliatone/go-psurgen/pkg/widgets"
)

// Draft identifies the JSON Schema dialect emitted by the builders.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Primitive type names.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
)

// Schema is a single validation rule: a leaf constraint or a composite
// object/array shape. Field order mirrors the emitted JSON key order.
type Schema struct {
	Version              string     `json:"$schema,omitempty"`
	ID                   string     `json:"$id,omitempty"`
	Ref                  string     `json:"$ref,omitempty"`
	Title                string     `json:"title,omitempty"`
	Description          string     `json:"description,omitempty"`
	Type                 Types      `json:"type,omitempty"`
	Const                any        `json:"const,omitempty"`
	Enum                 []any      `json:"enum,omitempty"`
	Default              any        `json:"default,omitempty"`
	Format               string     `json:"format,omitempty"`
	Pattern              string     `json:"pattern,omitempty"`
	MinLength            *int       `json:"minLength,omitempty"`
	MaxLength            *int       `json:"maxLength,omitempty"`
	Minimum              *float64   `json:"minimum,omitempty"`
	Maximum              *float64   `json:"maximum,omitempty"`
	MinItems             *int       `json:"minItems,omitempty"`
	MaxItems             *int       `json:"maxItems,omitempty"`
	Items                *Schema    `json:"items,omitempty"`
	AdditionalProperties *bool      `json:"additionalProperties,omitempty"`
	Required             []string   `json:"required,omitempty"`
	Properties           Properties `json:"properties,omitempty"`
	AllOf                []*Schema  `json:"allOf,omitempty"`
	If                   *Schema    `json:"if,omitempty"`
	Then                 *Schema    `json:"then,omitempty"`
	Defs                 Properties `json:"$defs,omitempty"`
	UI                   *UIHint    `json:"ui,omitempty"`
}

// UIHint carries renderer-facing widget metadata attached to a field.
type UIHint struct {
	Widget string `json:"widget,omitempty"`
	Label  string `json:"label,omitempty"`
	Help   string `json:"help,omitempty"`
}

// Types holds one or more JSON types. A single type serialises as a string,
// several as an array (e.g. ["integer","null"]).
type Types []string

// MarshalJSON implements json.Marshaler.
func (t Types) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Types) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = Types{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("schema: type must be a string or an array of strings: %w", err)
	}
	*t = Types(list)
	return nil
}

// Is reports whether kind is one of the declared types.
func (t Types) Is(kind string) bool {
	for _, entry := range t {
		if entry == kind {
			return true
		}
	}
	return false
}

// String returns a string schema.
func String() *Schema {
	return &Schema{Type: Types{TypeString}}
}

// Text returns a required-content string (minLength 1).
func Text() *Schema {
	return String().WithMinLength(1)
}

// Date returns a string schema with the "date" format.
func Date() *Schema {
	return String().WithFormat("date")
}

// Integer returns an integer schema.
func Integer() *Schema {
	return &Schema{Type: Types{TypeInteger}}
}

// Number returns a number schema.
func Number() *Schema {
	return &Schema{Type: Types{TypeNumber}}
}

// Boolean returns a boolean schema.
func Boolean() *Schema {
	return &Schema{Type: Types{TypeBoolean}}
}

// Nullable returns a schema accepting kind or null.
func Nullable(kind string) *Schema {
	return &Schema{Type: Types{kind, TypeNull}}
}

// Enum returns a string schema restricted to values.
func Enum(values ...string) *Schema {
	enum := make([]any, len(values))
	for idx, value := range values {
		enum[idx] = value
	}
	return &Schema{Type: Types{TypeString}, Enum: enum}
}

// Ref returns a schema pointing at a shared definition under $defs.
func Ref(definition string) *Schema {
	return &Schema{Ref: DefinitionPointer(definition)}
}

// DefinitionPointer returns the local reference for a $defs entry.
func DefinitionPointer(definition string) string {
	return "#/$defs/" + escapePointer(definition)
}

// Array returns an array schema with the supplied item shape.
func Array(items *Schema) *Schema {
	return &Schema{Type: Types{TypeArray}, Items: items}
}

// Object returns a closed object schema declaring props in order.
func Object(props ...Property) *Schema {
	return &Schema{
		Type:                 Types{TypeObject},
		AdditionalProperties: boolPtr(false),
		Properties:           Properties(append([]Property(nil), props...)),
	}
}

// WithTitle sets the schema title.
func (s *Schema) WithTitle(title string) *Schema {
	s.Title = title
	return s
}

// WithDescription sets the schema description.
func (s *Schema) WithDescription(description string) *Schema {
	s.Description = description
	return s
}

// WithDefault sets the default value. Slices should be passed as []any so
// the value survives a JSON round trip unchanged.
func (s *Schema) WithDefault(value any) *Schema {
	s.Default = value
	return s
}

// WithConst pins the schema to a single value.
func (s *Schema) WithConst(value any) *Schema {
	s.Const = value
	return s
}

// WithFormat sets the string format annotation.
func (s *Schema) WithFormat(format string) *Schema {
	s.Format = format
	return s
}

// WithPattern sets the string regex constraint.
func (s *Schema) WithPattern(pattern string) *Schema {
	s.Pattern = pattern
	return s
}

// WithMinLength sets the minimum string length.
func (s *Schema) WithMinLength(n int) *Schema {
	s.MinLength = intPtr(n)
	return s
}

// WithMaxLength sets the maximum string length.
func (s *Schema) WithMaxLength(n int) *Schema {
	s.MaxLength = intPtr(n)
	return s
}

// WithMinimum sets the inclusive numeric lower bound.
func (s *Schema) WithMinimum(value float64) *Schema {
	s.Minimum = floatPtr(value)
	return s
}

// WithMaximum sets the inclusive numeric upper bound.
func (s *Schema) WithMaximum(value float64) *Schema {
	s.Maximum = floatPtr(value)
	return s
}

// WithRange sets both numeric bounds.
func (s *Schema) WithRange(minimum, maximum float64) *Schema {
	return s.WithMinimum(minimum).WithMaximum(maximum)
}

// WithMinItems sets the minimum array length.
func (s *Schema) WithMinItems(n int) *Schema {
	s.MinItems = intPtr(n)
	return s
}

// WithMaxItems sets the maximum array length.
func (s *Schema) WithMaxItems(n int) *Schema {
	s.MaxItems = intPtr(n)
	return s
}

// WithLength pins an array to exactly n items.
func (s *Schema) WithLength(n int) *Schema {
	return s.WithMinItems(n).WithMaxItems(n)
}

// Require appends names to the required list, skipping names already present.
func (s *Schema) Require(names ...string) *Schema {
	for _, name := range names {
		if !slices.Contains(s.Required, name) {
			s.Required = append(s.Required, name)
		}
	}
	return s
}

// Widget sets the UI widget hint.
func (s *Schema) Widget(widget string) *Schema {
	s.ui().Widget = widget
	return s
}

// Label sets the UI label hint.
func (s *Schema) Label(label string) *Schema {
	s.ui().Label = label
	return s
}

// Help sets the UI help text hint.
func (s *Schema) Help(help string) *Schema {
	s.ui().Help = help
	return s
}

func (s *Schema) ui() *UIHint {
	if s.UI == nil {
		s.UI = &UIHint{}
	}
	return s.UI
}

// IsObject reports whether the schema declares the object type.
func (s *Schema) IsObject() bool {
	return s != nil && s.Type.Is(TypeObject)
}

// IsTable reports whether the schema is a repeating row structure produced
// by Table: an array of closed objects rendered with the table widget.
func (s *Schema) IsTable() bool {
	if s == nil || !s.Type.Is(TypeArray) || s.Items == nil || !s.Items.IsObject() {
		return false
	}
	return s.UI != nil && s.UI.Widget == widgets.Table
}

// Clone returns a deep copy of the schema tree.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	out.Type = cloneStrings(s.Type)
	out.Const = cloneAny(s.Const)
	out.Default = cloneAny(s.Default)
	if s.Enum != nil {
		out.Enum = cloneAny(s.Enum).([]any)
	}
	out.MinLength = cloneInt(s.MinLength)
	out.MaxLength = cloneInt(s.MaxLength)
	out.Minimum = cloneFloat(s.Minimum)
	out.Maximum = cloneFloat(s.Maximum)
	out.MinItems = cloneInt(s.MinItems)
	out.MaxItems = cloneInt(s.MaxItems)
	out.Items = s.Items.Clone()
	if s.AdditionalProperties != nil {
		out.AdditionalProperties = boolPtr(*s.AdditionalProperties)
	}
	out.Required = cloneStrings(s.Required)
	out.Properties = s.Properties.clone()
	if s.AllOf != nil {
		out.AllOf = make([]*Schema, len(s.AllOf))
		for idx, rule := range s.AllOf {
			out.AllOf[idx] = rule.Clone()
		}
	}
	out.If = s.If.Clone()
	out.Then = s.Then.Clone()
	out.Defs = s.Defs.clone()
	if s.UI != nil {
		hint := *s.UI
		out.UI = &hint
	}
	return &out
}

func cloneAny(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = cloneAny(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, val := range typed {
			out[idx] = cloneAny(val)
		}
		return out
	default:
		return typed
	}
}

func cloneStrings[T ~[]string](values T) T {
	if values == nil {
		return nil
	}
	return append(T(nil), values...)
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	return intPtr(*value)
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	return floatPtr(*value)
}

func intPtr(value int) *int {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}
