package psurgen

import (
	"context"

	"github.com/goliatone/go-psurgen/internal/psur"
	"github.com/goliatone/go-psurgen/pkg/orchestrator"
	"github.com/goliatone/go-psurgen/pkg/schema"
)

// DefaultOutput is the file name the CLI writes in the working directory.
const DefaultOutput = "template.json"

// Artifact aliases the assembled template.
type Artifact = orchestrator.Artifact

// Result aliases the description of a written artifact.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate builds the PSUR template and writes it to path atomically.
func Generate(ctx context.Context, path string, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Generate(ctx, path)
}

// Assemble builds the PSUR template without writing it. Warnings are only
// returned when lenient layout checking is enabled.
func Assemble(ctx context.Context, options ...orchestrator.Option) (Artifact, []string, error) {
	return orchestrator.New(options...).Assemble(ctx)
}

// BuildSchema returns the finalized PSUR root schema.
func BuildSchema() (*schema.Schema, error) {
	return psur.NewBuilder().Build()
}

// SectionKeys returns the ordered PSUR section keys.
func SectionKeys() []string {
	return psur.SectionKeys()
}
