package schema

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-psurgen/internal/jsonutil"
)

// Property pairs a property name with its schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Prop is shorthand for constructing a Property.
func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// Properties is a declaration-ordered property map. It serialises as a JSON
// object whose keys keep their declaration order.
type Properties []Property

// Get returns the schema declared under name.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Has reports whether name is declared.
func (p Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Names returns the declared names in order.
func (p Properties) Names() []string {
	if len(p) == 0 {
		return nil
	}
	out := make([]string, len(p))
	for idx, prop := range p {
		out[idx] = prop.Name
	}
	return out
}

// Set replaces the schema declared under name, or appends it when absent.
func (p *Properties) Set(name string, schema *Schema) {
	for idx := range *p {
		if (*p)[idx].Name == name {
			(*p)[idx].Schema = schema
			return
		}
	}
	*p = append(*p, Property{Name: name, Schema: schema})
}

// MarshalJSON implements json.Marshaler.
func (p Properties) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, *Schema]()
	for _, prop := range p {
		if _, exists := om.Get(prop.Name); exists {
			return nil, fmt.Errorf("schema: duplicate property %q", prop.Name)
		}
		om.Set(prop.Name, prop.Schema)
	}
	return jsonutil.MarshalOrdered(om)
}

// UnmarshalJSON implements json.Unmarshaler and keeps the document order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, *Schema]()
	if err := om.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("schema: decode properties: %w", err)
	}
	out := make(Properties, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Property{Name: pair.Key, Schema: pair.Value})
	}
	*p = out
	return nil
}

func (p Properties) clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for idx, prop := range p {
		out[idx] = Property{Name: prop.Name, Schema: prop.Schema.Clone()}
	}
	return out
}

// Pointer joins segments into a local JSON pointer ("#/a/b").
func Pointer(segments ...string) string {
	var b strings.Builder
	b.WriteString("#")
	for _, segment := range segments {
		b.WriteString("/")
		b.WriteString(escapePointer(segment))
	}
	return b.String()
}

func escapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

func unescapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}
