package schema

import (
	"reflect"
	"strings"

	"github.com/goliatone/go-psurgen/pkg/widgets"
)

// RequireWhen attaches a conditional rule to an object schema: when property
// equals value, every name in required becomes mandatory. The condition and
// its consequence must name properties declared on s; Check enforces this.
func (s *Schema) RequireWhen(property string, value any, required ...string) *Schema {
	rule := &Schema{
		If: &Schema{
			Properties: Properties{{Name: property, Schema: &Schema{Const: value}}},
		},
		Then: &Schema{Required: append([]string(nil), required...)},
	}
	s.AllOf = append(s.AllOf, rule)
	return s
}

// When attaches a general if/then rule. The names used by either branch must
// be declared on s.
func (s *Schema) When(condition, consequence *Schema) *Schema {
	s.AllOf = append(s.AllOf, &Schema{If: condition, Then: consequence})
	return s
}

// ConditionallyRequired reports the properties that become required when
// property holds value, according to the RequireWhen rules attached to s.
func (s *Schema) ConditionallyRequired(property string, value any) []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, rule := range s.AllOf {
		if rule == nil || rule.If == nil || rule.Then == nil {
			continue
		}
		cond, ok := rule.If.Properties.Get(property)
		if !ok || cond == nil || len(rule.If.Properties) != 1 {
			continue
		}
		if !reflect.DeepEqual(cond.Const, value) {
			continue
		}
		out = append(out, rule.Then.Required...)
	}
	return out
}

// VariantCase binds one discriminator value to the payload property it
// makes mandatory.
type VariantCase struct {
	Value    string
	Property string
	Payload  *Schema
}

// Case is shorthand for constructing a VariantCase.
func Case(value, property string, payload *Schema) VariantCase {
	return VariantCase{Value: value, Property: property, Payload: payload}
}

// Variant builds a tagged union: a closed object with a required
// discriminator enumeration and one optional payload property per case.
// Selecting a discriminator value requires exactly that case's payload and
// leaves the others optional.
func Variant(discriminator string, cases ...VariantCase) (*Schema, error) {
	discriminator = strings.TrimSpace(discriminator)
	if discriminator == "" {
		return nil, constructionErrorf("", "variant discriminator name is required")
	}
	if len(cases) == 0 {
		return nil, constructionErrorf(discriminator, "variant declares no cases")
	}

	values := make([]string, 0, len(cases))
	seenValues := make(map[string]struct{}, len(cases))
	seenProps := make(map[string]struct{}, len(cases))
	props := []Property{{Name: discriminator}}

	for _, c := range cases {
		switch {
		case strings.TrimSpace(c.Value) == "":
			return nil, constructionErrorf(discriminator, "variant case with empty value")
		case strings.TrimSpace(c.Property) == "":
			return nil, constructionErrorf(discriminator, "variant case %q has no payload property", c.Value)
		case c.Property == discriminator:
			return nil, constructionErrorf(discriminator, "variant case %q reuses the discriminator as payload", c.Value)
		case c.Payload == nil:
			return nil, constructionErrorf(discriminator, "variant case %q has no payload schema", c.Value)
		}
		if _, dup := seenValues[c.Value]; dup {
			return nil, constructionErrorf(discriminator, "variant value %q declared twice", c.Value)
		}
		if _, dup := seenProps[c.Property]; dup {
			return nil, constructionErrorf(discriminator, "variant payload %q declared twice", c.Property)
		}
		seenValues[c.Value] = struct{}{}
		seenProps[c.Property] = struct{}{}
		values = append(values, c.Value)
		props = append(props, Property{Name: c.Property, Schema: c.Payload})
	}

	props[0].Schema = Enum(values...).Widget(widgets.Select)
	out := Object(props...).Require(discriminator)
	for _, c := range cases {
		out.RequireWhen(discriminator, c.Value, c.Property)
	}
	return out, nil
}
