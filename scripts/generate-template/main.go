package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-psurgen"
	"github.com/goliatone/go-psurgen/pkg/orchestrator"
)

func main() {
	var (
		presentationPath = flag.String("presentation", "", "presentation YAML document (embedded default if empty)")
		outputPath       = flag.String("output", psurgen.DefaultOutput, "output path for the generated template")
		lenient          = flag.Bool("lenient", false, "report layout/schema mismatches as warnings")
		schemaOnly       = flag.Bool("schema-only", false, "write only the schema block")
		indent           = flag.String("indent", "  ", "JSON indentation (empty for compact output)")
	)
	flag.Parse()

	options := []orchestrator.Option{orchestrator.WithIndent(*indent)}
	if *presentationPath != "" {
		dir, name := filepath.Split(*presentationPath)
		if dir == "" {
			dir = "."
		}
		options = append(options, orchestrator.WithPresentationFS(os.DirFS(dir), name))
	}
	if *lenient {
		options = append(options, orchestrator.WithLenientLayout())
	}

	ctx := context.Background()
	if *schemaOnly {
		if err := writeSchema(*outputPath, *indent); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Wrote schema to %s\n", *outputPath)
		return
	}

	result, err := psurgen.Generate(ctx, *outputPath, options...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate template: %v\n", err)
		os.Exit(1)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	fmt.Printf("✓ Wrote template to %s (%d bytes)\n", result.Path, result.Size)
}

func writeSchema(path, indent string) error {
	root, err := psurgen.BuildSchema()
	if err != nil {
		return err
	}
	payload, err := orchestrator.EncodeSchema(root, indent)
	if err != nil {
		return err
	}
	return orchestrator.WriteFile(path, payload)
}
