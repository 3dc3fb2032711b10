package jsonschema

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckRefsJSON_Resolves(t *testing.T) {
	raw := []byte(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "urn:example:form",
  "type": "object",
  "properties": {
    "answer": {"$ref": "#/$defs/TriState"},
    "again": {"$ref": "urn:example:form#/$defs/TriState"},
    "anchored": {"$ref": "#yesNo"},
    "alias": {"$ref": "#/$defs/Alias"},
    "slash": {"$ref": "#/$defs/a~1b"}
  },
  "$defs": {
    "TriState": {"type": "string", "enum": ["Yes", "No", "N/A"]},
    "YesNo": {"$anchor": "yesNo", "type": "string", "enum": ["Yes", "No"]},
    "Alias": {"$ref": "#/$defs/TriState"},
    "a/b": {"type": "string"}
  }
}`)
	if err := CheckRefsJSON(raw); err != nil {
		t.Fatalf("expected refs to resolve, got %v", err)
	}
}

func TestCheckRefs_Failures(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"missing pointer": {
			doc:  `{"properties": {"a": {"$ref": "#/$defs/Missing"}}}`,
			want: `pointer "/$defs/Missing" not found (#/$defs/Missing at #/properties/a)`,
		},
		"missing anchor": {
			doc:  `{"properties": {"a": {"$ref": "#nowhere"}}}`,
			want: `anchor "nowhere" not found`,
		},
		"remote": {
			doc:  `{"properties": {"a": {"$ref": "https://example.com/schema.json#/x"}}}`,
			want: `remote refs are not allowed (scheme "https")`,
		},
		"relative document": {
			doc:  `{"properties": {"a": {"$ref": "other.json#/x"}}}`,
			want: "relative document refs are not allowed",
		},
		"cycle": {
			doc:  `{"properties": {"a": {"$ref": "#/$defs/A"}}, "$defs": {"A": {"$ref": "#/$defs/B"}, "B": {"$ref": "#/$defs/A"}}}`,
			want: "ref cycle detected at #/$defs/A",
		},
		"duplicate anchor": {
			doc:  `{"$defs": {"A": {"$anchor": "x"}, "B": {"$anchor": "x"}}}`,
			want: `duplicate anchor "x"`,
		},
		"not an object": {
			doc:  `[1, 2]`,
			want: "document root is not an object",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := CheckRefsJSON([]byte(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCheckRefs_DepthLimit(t *testing.T) {
	doc := map[string]any{
		"properties": map[string]any{"a": map[string]any{"$ref": "#/$defs/A"}},
		"$defs": map[string]any{
			"A": map[string]any{"$ref": "#/$defs/B"},
			"B": map[string]any{"$ref": "#/$defs/C"},
			"C": map[string]any{"type": "string"},
		},
	}
	if err := CheckRefs(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := CheckRefs(doc, WithMaxRefDepth(2))
	var refErr *RefError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected RefError, got %v", err)
	}
	if refErr.Pointer != "#/properties/a" || !strings.Contains(refErr.Message, "ref depth exceeds 2") {
		t.Fatalf("unexpected ref error: %+v", refErr)
	}
}

func TestCheckRefs_JoinsAllFailures(t *testing.T) {
	doc := `{"properties": {"b": {"$ref": "#/$defs/B"}, "a": {"$ref": "#/$defs/A"}}}`
	err := CheckRefsJSON([]byte(doc))
	if err == nil {
		t.Fatalf("expected errors")
	}
	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two joined errors, got %q", err.Error())
	}
	if !strings.Contains(lines[0], "#/properties/a") || !strings.Contains(lines[1], "#/properties/b") {
		t.Fatalf("expected errors in pointer order, got %q", err.Error())
	}
}

func TestCheckRefs_IgnoresRefsInsideLiterals(t *testing.T) {
	doc := `{"properties": {"a": {"const": {"$ref": "#/missing"}, "enum": [{"$ref": "#/missing"}]}}}`
	if err := CheckRefsJSON([]byte(doc)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
