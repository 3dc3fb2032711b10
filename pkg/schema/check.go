package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-psurgen/pkg/widgets"
)

// WalkFunc is invoked for every structural node reached through properties,
// items and $defs, in declaration order.
type WalkFunc func(pointer string, node *Schema) error

// Walk visits root and its structural descendants depth first. Rule
// branches (allOf/if/then) are partial schemas and are not visited.
func Walk(root *Schema, fn WalkFunc) error {
	if root == nil || fn == nil {
		return nil
	}
	return walk("#", root, fn)
}

func walk(pointer string, node *Schema, fn WalkFunc) error {
	if node == nil {
		return nil
	}
	if err := fn(pointer, node); err != nil {
		return err
	}
	for _, prop := range node.Properties {
		if err := walk(pointer+"/properties/"+escapePointer(prop.Name), prop.Schema, fn); err != nil {
			return err
		}
	}
	if node.Items != nil {
		if err := walk(pointer+"/items", node.Items, fn); err != nil {
			return err
		}
	}
	for _, def := range node.Defs {
		if err := walk(pointer+"/$defs/"+escapePointer(def.Name), def.Schema, fn); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a local JSON pointer ("#/properties/a/items") against root.
func Lookup(root *Schema, pointer string) (*Schema, error) {
	if root == nil {
		return nil, fmt.Errorf("schema: lookup %q: nil root", pointer)
	}
	trimmed := strings.TrimPrefix(pointer, "#")
	if trimmed == "" {
		return root, nil
	}
	if !strings.HasPrefix(trimmed, "/") {
		return nil, fmt.Errorf("schema: lookup %q: pointer must start with #/", pointer)
	}

	segments := strings.Split(trimmed[1:], "/")
	node := root
	for idx := 0; idx < len(segments); idx++ {
		segment := unescapePointer(segments[idx])
		switch segment {
		case "items":
			node = node.Items
		case "if":
			node = node.If
		case "then":
			node = node.Then
		case "properties", "$defs", "allOf":
			idx++
			if idx >= len(segments) {
				return nil, fmt.Errorf("schema: lookup %q: %s requires a key", pointer, segment)
			}
			key := unescapePointer(segments[idx])
			next, err := child(node, segment, key)
			if err != nil {
				return nil, fmt.Errorf("schema: lookup %q: %w", pointer, err)
			}
			node = next
		default:
			return nil, fmt.Errorf("schema: lookup %q: unsupported segment %q", pointer, segment)
		}
		if node == nil {
			return nil, fmt.Errorf("schema: lookup %q: no schema at segment %q", pointer, segment)
		}
	}
	return node, nil
}

func child(node *Schema, container, key string) (*Schema, error) {
	switch container {
	case "properties":
		if found, ok := node.Properties.Get(key); ok {
			return found, nil
		}
		return nil, fmt.Errorf("property %q not declared", key)
	case "$defs":
		if found, ok := node.Defs.Get(key); ok {
			return found, nil
		}
		return nil, fmt.Errorf("definition %q not declared", key)
	default:
		pos, err := strconv.Atoi(key)
		if err != nil || pos < 0 || pos >= len(node.AllOf) {
			return nil, fmt.Errorf("allOf index %q out of range", key)
		}
		return node.AllOf[pos], nil
	}
}

// Check verifies the structural invariants of a built schema tree and
// returns every violation joined into one error:
//   - object schemas are closed and their required names are declared
//   - conditional rules only name properties of the object they are attached to
//   - table widgets sit on arrays of closed objects
//   - $ref targets resolve inside the document
//   - enum defaults are allowed values and UI widgets are known
func Check(root *Schema) error {
	if root == nil {
		return &ConstructionError{Message: "schema is nil"}
	}
	var errs []error
	report := func(pointer, format string, args ...any) {
		errs = append(errs, constructionErrorf(pointer, format, args...))
	}

	_ = Walk(root, func(pointer string, node *Schema) error {
		if node.Type.Is(TypeObject) {
			if node.AdditionalProperties == nil || *node.AdditionalProperties {
				report(pointer, "object schema must set additionalProperties to false")
			}
			for _, name := range node.Required {
				if !node.Properties.Has(name) {
					report(pointer, "required property %q is not declared", name)
				}
			}
		}

		for idx, rule := range node.AllOf {
			checkRule(node, pointer+"/allOf/"+strconv.Itoa(idx), rule, report)
		}

		if node.UI != nil && node.UI.Widget != "" && !widgets.Known(node.UI.Widget) {
			report(pointer, "unknown widget %q (known: %s)", node.UI.Widget, strings.Join(widgets.Names(), ", "))
		}
		if node.UI != nil && node.UI.Widget == widgets.Table && !node.IsTable() {
			report(pointer, "table widget requires an array of objects")
		}
		if node.Type.Is(TypeArray) && node.Items == nil {
			report(pointer, "array schema declares no items")
		}

		if node.Ref != "" {
			if !strings.HasPrefix(node.Ref, "#/") {
				report(pointer, "reference %q is not local", node.Ref)
			} else if _, err := Lookup(root, node.Ref); err != nil {
				report(pointer, "reference %q does not resolve", node.Ref)
			}
		}

		if node.Default != nil && len(node.Enum) > 0 && !containsValue(node.Enum, node.Default) {
			report(pointer, "default %v is not an allowed value", node.Default)
		}
		if node.MinItems != nil && node.MaxItems != nil && *node.MinItems > *node.MaxItems {
			report(pointer, "minItems %d exceeds maxItems %d", *node.MinItems, *node.MaxItems)
		}
		return nil
	})

	return errors.Join(errs...)
}

func checkRule(owner *Schema, pointer string, rule *Schema, report func(string, string, ...any)) {
	if rule == nil {
		report(pointer, "empty conditional rule")
		return
	}
	if rule.If == nil || rule.Then == nil {
		report(pointer, "conditional rule requires both if and then")
		return
	}
	if len(owner.Properties) == 0 {
		report(pointer, "conditional rule attached to a schema without properties")
		return
	}
	for _, branch := range []struct {
		name string
		node *Schema
	}{{"if", rule.If}, {"then", rule.Then}} {
		for _, name := range branch.node.Required {
			if !owner.Properties.Has(name) {
				report(pointer+"/"+branch.name, "rule requires undeclared property %q", name)
			}
		}
		for _, name := range branch.node.Properties.Names() {
			if !owner.Properties.Has(name) {
				report(pointer+"/"+branch.name, "rule references undeclared property %q", name)
			}
		}
	}
	for _, cond := range rule.If.Properties {
		target, ok := owner.Properties.Get(cond.Name)
		if !ok || cond.Schema == nil || cond.Schema.Const == nil || target == nil {
			continue
		}
		if len(target.Enum) > 0 && !containsValue(target.Enum, cond.Schema.Const) {
			report(pointer+"/if", "rule constant %v is not an allowed value of %q", cond.Schema.Const, cond.Name)
		}
	}
}

func containsValue(values []any, candidate any) bool {
	for _, value := range values {
		if reflect.DeepEqual(value, candidate) {
			return true
		}
	}
	return false
}
