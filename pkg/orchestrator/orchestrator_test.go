package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-psurgen/internal/psur"
	"github.com/goliatone/go-psurgen/pkg/layout"
	"github.com/goliatone/go-psurgen/pkg/schema"
	"github.com/goliatone/go-psurgen/pkg/testsupport"
	"github.com/goliatone/go-psurgen/pkg/uischema"
)

const presentationGolden = "testdata/presentation.golden.json"

func defaultPresentation(t *testing.T) uischema.Presentation {
	t.Helper()
	p, err := uischema.LoadDefault()
	if err != nil {
		t.Fatalf("load presentation: %v", err)
	}
	return p
}

func TestGenerate_WritesArtifact(t *testing.T) {
	path := testsupport.TempPath(t, "template.json")

	result, err := New().Generate(testsupport.Context(), path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings in strict mode, got %v", result.Warnings)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Equal(written, result.Bytes) || result.Size != len(written) {
		t.Fatalf("result does not describe the written file (size %d, file %d bytes)", result.Size, len(written))
	}
	if !strings.HasPrefix(string(written), "{\n  \"meta\": {") {
		t.Fatalf("expected two-space indented output, got %q", string(written[:40]))
	}
	if !bytes.Contains(written, []byte("IMDRF Problem Code & Term")) {
		t.Fatalf("expected HTML characters to be written unescaped")
	}

	if diff := cmp.Diff([]string{"meta", "schema", "uiSchema", "layout", "theme"}, topLevelKeys(t, written)); diff != "" {
		t.Fatalf("top-level keys mismatch (-want +got):\n%s", diff)
	}

	artifact, err := Decode(written)
	if err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if diff := cmp.Diff([]string{"form", "psur_cover_page", "sections"}, artifact.Schema.Required); diff != "" {
		t.Fatalf("schema.required mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(psur.SectionKeys(), artifact.UISchema.Sections.Order); diff != "" {
		t.Fatalf("ui:order mismatch (-want +got):\n%s", diff)
	}

	sales, ok := artifact.Layout.Tables.Get("C.table_1_annual_sales")
	if !ok {
		t.Fatalf("C.table_1_annual_sales missing from layout")
	}
	if len(sales.Columns) != 6 || sales.HeaderRows != 3 || len(sales.MergedCells) != 3 {
		t.Fatalf("unexpected annual sales layout: %d columns, %d header rows, %d merges",
			len(sales.Columns), sales.HeaderRows, len(sales.MergedCells))
	}

	reencoded, err := Encode(artifact, defaultIndent)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(written, reencoded) {
		t.Fatalf("artifact does not survive a decode/encode round trip")
	}
}

func TestGenerate_ReplacesExistingFile(t *testing.T) {
	path := testsupport.TempPath(t, "template.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	result, err := New().Generate(testsupport.Context(), path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Equal(written, result.Bytes) {
		t.Fatalf("expected the stale file to be replaced")
	}
	assertNoTempFiles(t, filepath.Dir(path), "template.json")
}

func TestAssemble_PresentationGolden(t *testing.T) {
	artifact, _, err := New().Assemble(testsupport.Context())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	encoded, err := Encode(artifact, defaultIndent)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, ok := testsupport.MustDecodeJSON(t, encoded).(map[string]any)
	if !ok {
		t.Fatalf("artifact is not an object")
	}
	delete(got, "schema")

	if testsupport.UpdateGoldens() {
		testsupport.WriteGolden(t, presentationGolden, got)
		return
	}
	want := testsupport.MustDecodeJSON(t, testsupport.MustReadGolden(t, presentationGolden))
	if diff := testsupport.CompareGolden(want, any(got)); diff != "" {
		t.Fatalf("presentation blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_UnboundTableStrictAndLenient(t *testing.T) {
	p := defaultPresentation(t)
	p.Layout.Tables = append(p.Layout.Tables, layout.TableLayout{
		ID:      "Z.orphan",
		Columns: []layout.Column{{Key: "a", Header: "A"}},
	})

	_, _, err := New(WithPresentation(p)).Assemble(testsupport.Context())
	var assemblyErr *AssemblyError
	if !errors.As(err, &assemblyErr) {
		t.Fatalf("expected AssemblyError in strict mode, got %v", err)
	}
	if assemblyErr.Block != BlockLayout || assemblyErr.Path != "Z.orphan" {
		t.Fatalf("unexpected assembly error: %+v", assemblyErr)
	}
	var issue layout.Issue
	if !errors.As(err, &issue) || issue.Message != "no schema binding" {
		t.Fatalf("expected the layout issue to be wrapped, got %v", err)
	}

	artifact, warnings, err := New(WithPresentation(p), WithLenientLayout()).Assemble(testsupport.Context())
	if err != nil {
		t.Fatalf("lenient assemble: %v", err)
	}
	if diff := cmp.Diff([]string{`layout: table "Z.orphan": no schema binding`}, warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
	if _, ok := artifact.Layout.Tables.Get("Z.orphan"); !ok {
		t.Fatalf("lenient mode should keep the unbound table")
	}
}

func TestAssemble_BindingMismatch(t *testing.T) {
	p := defaultPresentation(t)
	for idx := range p.Bindings {
		if p.Bindings[idx].Table == "L.table_11_pmcf" {
			p.Bindings[idx].Pointer = "#/$defs/sections/properties/L_pmcf/properties/summary_or_na_statement"
		}
	}
	_, _, err := New(WithPresentation(p)).Assemble(testsupport.Context())
	if err == nil || !strings.Contains(err.Error(), "binding target is not a table schema") {
		t.Fatalf("expected non-table binding error, got %v", err)
	}
}

func TestAssemble_LockMismatches(t *testing.T) {
	cases := map[string]struct {
		mutate func(*uischema.Presentation)
		want   string
	}{
		"typography": {
			mutate: func(p *uischema.Presentation) { p.Layout.TypographyLock.FontSizePt = 11 },
			want:   "typography_lock Arial 11pt/1.15 does not match theme Arial 10pt/1.15",
		},
		"section order": {
			mutate: func(p *uischema.Presentation) { p.UI.GlobalOptions.LockSectionOrder = false },
			want:   "lockSectionOrder=false but section_order_locked=true",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := defaultPresentation(t)
			tc.mutate(&p)
			_, _, err := New(WithPresentation(p)).Assemble(testsupport.Context())
			var assemblyErr *AssemblyError
			if !errors.As(err, &assemblyErr) || assemblyErr.Block != BlockLayout {
				t.Fatalf("expected layout AssemblyError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %v", tc.want, err)
			}
		})
	}
}

func TestAssemble_MissingSectionTitle(t *testing.T) {
	p := defaultPresentation(t)
	p.UI.Sections = p.UI.Sections[:len(p.UI.Sections)-1]
	_, _, err := New(WithPresentation(p)).Assemble(testsupport.Context())
	var assemblyErr *AssemblyError
	if !errors.As(err, &assemblyErr) || assemblyErr.Block != BlockUISchema {
		t.Fatalf("expected uiSchema AssemblyError, got %v", err)
	}
	if !strings.Contains(err.Error(), `"M_findings_and_conclusions" has no title`) {
		t.Fatalf("expected missing title for section M, got %v", err)
	}
}

type stubBuilder struct {
	root *schema.Schema
	keys []string
	err  error
}

func (s stubBuilder) Build() (*schema.Schema, error) { return s.root, s.err }
func (s stubBuilder) SectionKeys() []string          { return s.keys }

// trimmedBuilder wraps the PSUR builder and rebuilds the root with only the
// kept properties and required names.
type trimmedBuilder struct {
	keep    []string
	require []string
}

func (b trimmedBuilder) Build() (*schema.Schema, error) {
	full, err := psur.NewBuilder().Build()
	if err != nil {
		return nil, err
	}
	var props []schema.Property
	for _, name := range b.keep {
		prop, _ := full.Properties.Get(name)
		props = append(props, schema.Prop(name, prop))
	}
	root := schema.Object(props...).Require(b.require...)
	root.Defs = full.Defs
	return root, nil
}

func (b trimmedBuilder) SectionKeys() []string { return psur.SectionKeys() }

func TestAssemble_SchemaBlockFailures(t *testing.T) {
	construction := &schema.ConstructionError{Path: "#/broken", Message: "boom"}
	cases := map[string]struct {
		builder SchemaBuilder
		want    string
	}{
		"builder error": {
			builder: stubBuilder{err: construction},
			want:    "build failed",
		},
		"nil schema": {
			builder: stubBuilder{},
			want:    "builder returned no schema",
		},
		"no sections property": {
			builder: stubBuilder{root: schema.Object(
				schema.Prop(psur.PropForm, schema.Object()),
				schema.Prop(psur.PropCoverPage, schema.Object()),
			).Require(psur.PropForm, psur.PropCoverPage)},
			want: "root schema has no sections property",
		},
		"form and cover page stripped": {
			builder: trimmedBuilder{keep: []string{psur.PropSections}, require: []string{psur.PropSections}},
			want:    "root schema has no form property",
		},
		"cover page not required": {
			builder: trimmedBuilder{
				keep:    []string{psur.PropForm, psur.PropCoverPage, psur.PropSections},
				require: []string{psur.PropForm, psur.PropSections},
			},
			want: "root schema does not require psur_cover_page",
		},
		"no sections definition": {
			builder: stubBuilder{root: schema.Object(
				schema.Prop(psur.PropForm, schema.Object()),
				schema.Prop(psur.PropCoverPage, schema.Object()),
				schema.Prop(psur.PropSections, schema.Object()),
			).Require(psur.PropForm, psur.PropCoverPage, psur.PropSections)},
			want: "sections definition missing",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := New(WithBuilder(tc.builder)).Assemble(testsupport.Context())
			var assemblyErr *AssemblyError
			if !errors.As(err, &assemblyErr) || assemblyErr.Block != BlockSchema {
				t.Fatalf("expected schema AssemblyError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %v", tc.want, err)
			}
		})
	}

	_, _, err := New(WithBuilder(stubBuilder{err: construction})).Assemble(testsupport.Context())
	var constructionErr *schema.ConstructionError
	if !errors.As(err, &constructionErr) || constructionErr.Path != "#/broken" {
		t.Fatalf("expected the construction error to be unwrapped, got %v", err)
	}
}

func TestAssemble_SchemaValidatorHook(t *testing.T) {
	sentinel := errors.New("rejected")
	var seen []byte
	validator := func(raw []byte) error {
		seen = raw
		return sentinel
	}
	_, _, err := New(WithSchemaValidator(validator)).Assemble(testsupport.Context())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected validator error to be wrapped, got %v", err)
	}
	if !bytes.Contains(seen, []byte(`"$id":"`+psur.SchemaID+`"`)) {
		t.Fatalf("validator did not receive the serialized schema")
	}

	if _, _, err := New(WithSchemaValidator(nil)).Assemble(testsupport.Context()); err != nil {
		t.Fatalf("expected a nil validator to skip the check, got %v", err)
	}
}

func TestAssemble_PresentationFS(t *testing.T) {
	if _, _, err := New(WithPresentationFS(uischema.EmbeddedFS(), "missing.yaml")).Assemble(testsupport.Context()); err == nil {
		t.Fatalf("expected missing presentation document to fail")
	} else {
		var assemblyErr *AssemblyError
		if !errors.As(err, &assemblyErr) || assemblyErr.Block != BlockPresentation || assemblyErr.Path != "missing.yaml" {
			t.Fatalf("expected presentation AssemblyError, got %v", err)
		}
	}
}

func TestGenerate_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := testsupport.TempPath(t, "template.json")
	if _, err := New().Generate(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected no artifact after cancellation, got %v", err)
	}
}

func TestGenerate_UnwritablePath(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "missing", "template.json")
	_, err := New().Generate(testsupport.Context(), missingDir)
	var outputErr *OutputError
	if !errors.As(err, &outputErr) || outputErr.Op != "create" {
		t.Fatalf("expected OutputError from create, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected the OS error to be exposed, got %v", err)
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "template.json")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err = New().Generate(testsupport.Context(), target)
	if !errors.As(err, &outputErr) || outputErr.Op != "rename" || outputErr.Path != target {
		t.Fatalf("expected OutputError from rename, got %v", err)
	}
	assertNoTempFiles(t, dir, "template.json")
}

func TestGenerate_RequiresPath(t *testing.T) {
	if _, err := New().Generate(testsupport.Context(), ""); err == nil {
		t.Fatalf("expected empty path to be rejected")
	}
}

func topLevelKeys(t *testing.T, data []byte) []string {
	t.Helper()
	decoder := json.NewDecoder(bytes.NewReader(data))
	if _, err := decoder.Token(); err != nil {
		t.Fatalf("read opening token: %v", err)
	}
	var keys []string
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			t.Fatalf("read key: %v", err)
		}
		keys = append(keys, token.(string))
		var skip json.RawMessage
		if err := decoder.Decode(&skip); err != nil {
			t.Fatalf("skip value: %v", err)
		}
	}
	return keys
}

func assertNoTempFiles(t *testing.T, dir string, keep ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	if diff := cmp.Diff(keep, names); diff != "" {
		t.Fatalf("unexpected files left behind (-want +got):\n%s", diff)
	}
}

func TestEncodeSchema_MatchesArtifactEscaping(t *testing.T) {
	root := schema.Object(schema.Prop("rate", schema.Number().WithTitle("Rate < 1 & > 0")))

	encoded, err := EncodeSchema(root, defaultIndent)
	if err != nil {
		t.Fatalf("encode schema: %v", err)
	}
	if !bytes.Contains(encoded, []byte(`"title": "Rate < 1 & > 0"`)) {
		t.Fatalf("expected HTML characters to be written unescaped, got %s", encoded)
	}
	if !bytes.HasPrefix(encoded, []byte("{\n  \"type\"")) || !bytes.HasSuffix(encoded, []byte("}\n")) {
		t.Fatalf("expected indented output with a trailing newline, got %s", encoded)
	}

	if _, err := EncodeSchema(nil, defaultIndent); err == nil {
		t.Fatalf("expected a nil schema to be rejected")
	}
}

func TestGenerate_WithIndent(t *testing.T) {
	path := testsupport.TempPath(t, "compact.json")

	result, err := New(WithIndent("")).Generate(testsupport.Context(), path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(result.Bytes, []byte(`{"meta":{`)) {
		t.Fatalf("expected compact output, got %q", string(result.Bytes[:20]))
	}
	if bytes.Count(result.Bytes, []byte("\n")) != 1 {
		t.Fatalf("expected a single trailing newline in compact output")
	}
}
