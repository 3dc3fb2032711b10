package uischema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-psurgen/pkg/schema"
	"github.com/goliatone/go-psurgen/pkg/widgets"
)

var (
	rendererTargets = []string{"docx", "pdf", "web"}
	validateOnModes = []string{"blur", "change", "submit"}
	showErrorModes  = []string{"inline", "summary"}
	customFields    = []string{widgets.HierarchicalTable}
)

// Validate checks the meta block.
func (m Meta) Validate() error {
	var errs []error
	if strings.TrimSpace(m.ID) == "" {
		errs = append(errs, errors.New("uischema: meta.id is required"))
	}
	if strings.TrimSpace(m.Revision) == "" {
		errs = append(errs, errors.New("uischema: meta.revision is required"))
	}
	if len(m.RendererTargets) == 0 {
		errs = append(errs, errors.New("uischema: meta.renderer_targets must not be empty"))
	}
	seen := make(map[string]struct{}, len(m.RendererTargets))
	for _, target := range m.RendererTargets {
		if !slices.Contains(rendererTargets, target) {
			errs = append(errs, fmt.Errorf("uischema: unsupported renderer target %q", target))
		}
		if _, dup := seen[target]; dup {
			errs = append(errs, fmt.Errorf("uischema: renderer target %q listed twice", target))
		}
		seen[target] = struct{}{}
	}
	return errors.Join(errs...)
}

// Validate checks the theme block.
func (t Theme) Validate() error {
	p := t.WordFormFidelity
	var errs []error
	if strings.TrimSpace(p.FontFamily) == "" {
		errs = append(errs, errors.New("uischema: theme fontFamily is required"))
	}
	if p.FontSizePt <= 0 || p.LineHeight <= 0 {
		errs = append(errs, errors.New("uischema: theme font size and line height must be positive"))
	}
	for label, weight := range map[string]int{
		"sectionTitleWeight": p.SectionTitleWeight,
		"table.headerWeight": p.Table.HeaderWeight,
	} {
		if weight < 100 || weight > 900 || weight%100 != 0 {
			errs = append(errs, fmt.Errorf("uischema: theme %s %d is not a font weight", label, weight))
		}
	}
	if p.BlockSpacingPx < 0 || p.Table.CellPaddingPx < 0 {
		errs = append(errs, errors.New("uischema: theme spacing must not be negative"))
	}
	if p.Inputs.Text.HeightPx <= 0 || p.Inputs.Textarea.MinHeightPx <= 0 {
		errs = append(errs, errors.New("uischema: theme input sizes must be positive"))
	}
	return errors.Join(errs...)
}

// Validate checks the presentation document in isolation: meta, theme,
// layout structure and plain-text display strings.
func (p Presentation) Validate() error {
	errs := []error{p.Meta.Validate(), p.Theme.Validate(), p.Layout.Validate()}
	for _, table := range p.Layout.Tables {
		for _, column := range table.Columns {
			errs = append(errs, PlainText(fmt.Sprintf("table %s header", table.ID), column.Header))
		}
		for _, cell := range table.MergedCells {
			errs = append(errs, PlainText(fmt.Sprintf("table %s merged label", table.ID), cell.Label))
		}
		for _, row := range table.PrefillRows {
			errs = append(errs, PlainText(fmt.Sprintf("table %s prefill row", table.ID), row))
		}
	}
	for _, section := range p.UI.Sections {
		errs = append(errs, PlainText(fmt.Sprintf("section %s title", section.Key), section.Title))
	}
	return errors.Join(errs...)
}

// Validate checks the assembled UI schema against the section keys and the
// resolved sections schema: order, titles, and that every field hint targets
// a declared property. Exactly one hierarchical table hint is expected.
func (u UISchema) Validate(keys []string, sections *schema.Schema) error {
	var errs []error
	if !slices.Contains(validateOnModes, u.GlobalOptions.ValidateOn) {
		errs = append(errs, fmt.Errorf("uischema: unsupported validateOn %q", u.GlobalOptions.ValidateOn))
	}
	if !slices.Contains(showErrorModes, u.GlobalOptions.ShowErrors) {
		errs = append(errs, fmt.Errorf("uischema: unsupported showErrors %q", u.GlobalOptions.ShowErrors))
	}
	if !slices.Equal(keys, u.Sections.Order) {
		errs = append(errs, fmt.Errorf("uischema: %s %v does not match section keys %v", KeyOrder, u.Sections.Order, keys))
	}
	if len(u.Sections.Entries) != len(u.Sections.Order) {
		errs = append(errs, fmt.Errorf("uischema: %d section entries for %d ordered keys", len(u.Sections.Entries), len(u.Sections.Order)))
	}

	hierarchical := 0
	for idx, entry := range u.Sections.Entries {
		if idx < len(u.Sections.Order) && entry.Key != u.Sections.Order[idx] {
			errs = append(errs, fmt.Errorf("uischema: section entry %q out of order (want %q)", entry.Key, u.Sections.Order[idx]))
		}
		if strings.TrimSpace(entry.Title) == "" {
			errs = append(errs, fmt.Errorf("uischema: section %q has an empty title", entry.Key))
		}
		var declared *schema.Schema
		if sections != nil {
			declared, _ = sections.Properties.Get(entry.Key)
		}
		for _, field := range entry.Fields {
			if field.Field == widgets.HierarchicalTable {
				hierarchical++
			}
			if field.Field != "" && !slices.Contains(customFields, field.Field) {
				errs = append(errs, fmt.Errorf("uischema: section %q field %q uses unknown %s %q", entry.Key, field.Name, KeyField, field.Field))
			}
			if field.Widget != "" && !widgets.Known(field.Widget) {
				errs = append(errs, fmt.Errorf("uischema: section %q field %q uses unknown %s %q (known: %s)",
					entry.Key, field.Name, KeyWidget, field.Widget, strings.Join(widgets.Names(), ", ")))
			}
			if field.Options != nil && field.Field == "" {
				errs = append(errs, fmt.Errorf("uischema: section %q field %q sets %s without %s", entry.Key, field.Name, KeyOptions, KeyField))
			}
			if declared == nil || !declared.Properties.Has(field.Name) {
				errs = append(errs, fmt.Errorf("uischema: section %q hint targets undeclared field %q", entry.Key, field.Name))
			}
		}
	}
	if hierarchical != 1 {
		errs = append(errs, fmt.Errorf("uischema: expected exactly one %s hint, found %d", widgets.HierarchicalTable, hierarchical))
	}
	return errors.Join(errs...)
}
