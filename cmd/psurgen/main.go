package main

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-psurgen"
)

func main() {
	ctx := context.Background()

	result, err := psurgen.Generate(ctx, psurgen.DefaultOutput)
	if err != nil {
		log.Fatalf("Failed to generate %s: %v", psurgen.DefaultOutput, err)
	}
	for _, warning := range result.Warnings {
		log.Printf("warning: %s", warning)
	}

	fmt.Println(summary(result))
}

func summary(result psurgen.Result) string {
	size := message.NewPrinter(language.English).Sprintf("%d", result.Size)
	check := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3FB950")).
		Render("✓")
	return fmt.Sprintf("%s Generated %s (%s bytes)", check, result.Path, size)
}
