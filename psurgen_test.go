package psurgen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-psurgen"
	"github.com/goliatone/go-psurgen/pkg/orchestrator"
)

func TestGenerate_DefaultTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), psurgen.DefaultOutput)

	result, err := psurgen.Generate(context.Background(), path)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Path != path {
		t.Fatalf("expected result path %q, got %q", path, result.Path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	artifact, err := orchestrator.Decode(data)
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if artifact.Meta.ID == "" {
		t.Fatalf("expected meta.id to be populated")
	}
	if diff := cmp.Diff(psurgen.SectionKeys(), artifact.UISchema.Sections.Order); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSchema_DeclaresEverySection(t *testing.T) {
	root, err := psurgen.BuildSchema()
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	sections, ok := root.Defs.Get("sections")
	if !ok {
		t.Fatalf("expected $defs.sections")
	}
	if diff := cmp.Diff(psurgen.SectionKeys(), sections.Properties.Names()); diff != "" {
		t.Fatalf("section properties mismatch (-want +got):\n%s", diff)
	}
}

func TestSectionKeys_ReturnsCopy(t *testing.T) {
	keys := psurgen.SectionKeys()
	keys[0] = "mutated"
	if psurgen.SectionKeys()[0] == "mutated" {
		t.Fatalf("SectionKeys must not expose its backing slice")
	}
}
