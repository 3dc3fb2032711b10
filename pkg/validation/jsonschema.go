package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// resourceURL is the location the compiled document is registered under.
// Fragments passed to ValidateInstance are resolved against it.
const resourceURL = "file:///template.schema.json"

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i SchemaIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// SchemaValidationResult captures validation outcomes.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// Err folds the issues into a single error, or returns nil when valid.
func (r SchemaValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Issues))
	for _, issue := range r.Issues {
		errs = append(errs, errors.New(issue.String()))
	}
	if len(errs) == 0 {
		return errors.New("validation: invalid")
	}
	return errors.Join(errs...)
}

var printer = message.NewPrinter(language.English)

// ValidateJSONSchema compiles raw as a Draft 2020-12 schema, which checks it
// against the meta-schema and resolves every reference.
func ValidateJSONSchema(raw []byte) SchemaValidationResult {
	if _, err := compile(raw, ""); err != nil {
		return invalid(err)
	}
	return SchemaValidationResult{Valid: true}
}

// ValidateInstance validates an instance document against the schema in
// rawSchema, or against the subschema at fragment (a JSON pointer such as
// "/$defs/sections/properties/A") when fragment is not empty.
func ValidateInstance(rawSchema, instance []byte, fragment string) SchemaValidationResult {
	compiled, err := compile(rawSchema, fragment)
	if err != nil {
		return invalid(err)
	}
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(instance))
	if err != nil {
		return invalid(fmt.Errorf("validation: decode instance: %w", err))
	}
	if err := compiled.Validate(value); err != nil {
		return invalid(err)
	}
	return SchemaValidationResult{Valid: true}
}

func compile(raw []byte, fragment string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation: decode schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	compiler.AssertFormat()
	if err := compiler.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("validation: add schema resource: %w", err)
	}
	location := resourceURL
	if fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#"); fragment != "" {
		location += "#" + fragment
	}
	return compiler.Compile(location)
}

func invalid(err error) SchemaValidationResult {
	return SchemaValidationResult{Valid: false, Issues: issuesFromError(err)}
}

func issuesFromError(err error) []SchemaIssue {
	if err == nil {
		return []SchemaIssue{{Message: "unknown error"}}
	}

	var verr *jsonschema.ValidationError
	var schemaErr *jsonschema.SchemaValidationError
	if errors.As(err, &schemaErr) {
		if !errors.As(schemaErr.Err, &verr) {
			return []SchemaIssue{messageIssue(schemaErr.Err)}
		}
	} else if !errors.As(err, &verr) {
		return []SchemaIssue{messageIssue(err)}
	}

	var issues []SchemaIssue
	for _, leaf := range leaves(verr) {
		pointer := instancePointer(leaf.InstanceLocation)
		issues = append(issues, SchemaIssue{
			Path:    pointer,
			Field:   fieldPathFromPointer(pointer),
			Message: leaf.ErrorKind.LocalizedString(printer),
		})
	}
	if len(issues) == 0 {
		return []SchemaIssue{messageIssue(err)}
	}
	return issues
}

func leaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}

func messageIssue(err error) SchemaIssue {
	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	msg = strings.TrimPrefix(msg, "validation: ")
	msg = strings.TrimPrefix(msg, "jsonschema: ")
	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: strings.TrimSpace(msg),
	}
}

func instancePointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, token := range tokens {
		token = strings.ReplaceAll(token, "~", "~0")
		token = strings.ReplaceAll(token, "/", "~1")
		b.WriteString("/")
		b.WriteString(token)
	}
	return b.String()
}

func extractJSONPointer(message string) string {
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		candidate := strings.Fields(message[idx:])
		if len(candidate) > 0 {
			return trimPointer(candidate[0])
		}
	}
	return ""
}

func trimPointer(pointer string) string {
	trimmed := strings.TrimRight(pointer, ".)];,'\"")
	return strings.TrimSpace(trimmed)
}

// fieldPathFromPointer maps a JSON pointer to a dotted field path. Schema
// keywords (properties, $defs, allOf indexes) are dropped so that schema and
// instance pointers read the same way.
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := unescape(parts[idx])
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				out = append(out, unescape(parts[idx+1]))
				idx++
			}
		case "oneOf", "anyOf", "allOf":
			if idx+1 < len(parts) && isNumeric(parts[idx+1]) {
				idx++
			}
		case "$defs":
			if idx+1 < len(parts) {
				idx++
			}
		case "":
		default:
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}

func unescape(segment string) string {
	segment = strings.ReplaceAll(segment, "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
