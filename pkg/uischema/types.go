package uischema

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-psurgen/internal/jsonutil"
)

// Reserved keys of the UI schema block.
const (
	KeyOrder   = "ui:order"
	KeyTitle   = "ui:title"
	KeyField   = "ui:field"
	KeyWidget  = "ui:widget"
	KeyOptions = "ui:options"
)

// UISchema is the renderer-facing ordering and hint block.
type UISchema struct {
	GlobalOptions GlobalOptions `json:"ui:globalOptions" yaml:"globalOptions"`
	Sections      Sections      `json:"sections" yaml:"-"`
}

// GlobalOptions controls validation triggers for the whole form.
type GlobalOptions struct {
	ValidateOn       string `json:"validateOn" yaml:"validateOn"`
	ShowErrors       string `json:"showErrors" yaml:"showErrors"`
	LockSectionOrder bool   `json:"lockSectionOrder" yaml:"lockSectionOrder"`
}

// Sections carries the canonical section order followed by one entry per
// section. It serialises as {"ui:order": [...], "<key>": {...}, ...}.
type Sections struct {
	Order   []string
	Entries []SectionUI
}

// Get returns the entry for key.
func (s Sections) Get(key string) (SectionUI, bool) {
	for _, entry := range s.Entries {
		if entry.Key == key {
			return entry, true
		}
	}
	return SectionUI{}, false
}

// MarshalJSON implements json.Marshaler.
func (s Sections) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any]()
	order := s.Order
	if order == nil {
		order = []string{}
	}
	om.Set(KeyOrder, order)
	for _, entry := range s.Entries {
		if _, exists := om.Get(entry.Key); exists {
			return nil, fmt.Errorf("uischema: duplicate section entry %q", entry.Key)
		}
		om.Set(entry.Key, entry)
	}
	return jsonutil.MarshalOrdered(om)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Sections) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, json.RawMessage]()
	if err := om.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("uischema: decode sections: %w", err)
	}
	out := Sections{}
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == KeyOrder {
			if err := json.Unmarshal(pair.Value, &out.Order); err != nil {
				return fmt.Errorf("uischema: decode %s: %w", KeyOrder, err)
			}
			continue
		}
		var entry SectionUI
		if err := json.Unmarshal(pair.Value, &entry); err != nil {
			return fmt.Errorf("uischema: decode section %q: %w", pair.Key, err)
		}
		entry.Key = pair.Key
		out.Entries = append(out.Entries, entry)
	}
	*s = out
	return nil
}

// SectionUI holds the title and field hints of one section.
type SectionUI struct {
	Key    string
	Title  string
	Fields []FieldUI
}

// MarshalJSON implements json.Marshaler.
func (s SectionUI) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any]()
	om.Set(KeyTitle, s.Title)
	for _, field := range s.Fields {
		if field.Name == KeyTitle {
			return nil, fmt.Errorf("uischema: section %q field uses reserved name %q", s.Key, KeyTitle)
		}
		if _, exists := om.Get(field.Name); exists {
			return nil, fmt.Errorf("uischema: section %q declares field %q twice", s.Key, field.Name)
		}
		om.Set(field.Name, field)
	}
	return jsonutil.MarshalOrdered(om)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SectionUI) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, json.RawMessage]()
	if err := om.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("uischema: decode section: %w", err)
	}
	out := SectionUI{Key: s.Key}
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == KeyTitle {
			if err := json.Unmarshal(pair.Value, &out.Title); err != nil {
				return fmt.Errorf("uischema: decode %s: %w", KeyTitle, err)
			}
			continue
		}
		if strings.HasPrefix(pair.Key, "ui:") {
			return fmt.Errorf("uischema: unsupported section key %q", pair.Key)
		}
		var field FieldUI
		if err := json.Unmarshal(pair.Value, &field); err != nil {
			return fmt.Errorf("uischema: decode field %q: %w", pair.Key, err)
		}
		field.Name = pair.Key
		out.Fields = append(out.Fields, field)
	}
	*s = out
	return nil
}

// FieldUI is a per-field rendering hint keyed by the schema property name.
type FieldUI struct {
	Name    string        `json:"-" yaml:"name"`
	Field   string        `json:"ui:field,omitempty" yaml:"field,omitempty"`
	Widget  string        `json:"ui:widget,omitempty" yaml:"widget,omitempty"`
	Options *FieldOptions `json:"ui:options,omitempty" yaml:"options,omitempty"`
}

// FieldOptions configures custom field renderers such as the hierarchical
// complaint table: repeated headers, row indentation triggers and composite
// cell templates (a cell rendering rate over count).
type FieldOptions struct {
	GridLines          bool              `json:"gridLines" yaml:"gridLines"`
	HeaderRepeat       bool              `json:"headerRepeat" yaml:"headerRepeat"`
	RowIndentFieldWhen map[string]string `json:"rowIndentFieldWhen,omitempty" yaml:"rowIndentFieldWhen,omitempty"`
	CellTemplate       map[string]string `json:"cellTemplate,omitempty" yaml:"cellTemplate,omitempty"`
}

// Meta identifies the generated template pack.
type Meta struct {
	ID                     string   `json:"id" yaml:"id"`
	SourceFile             string   `json:"source_file" yaml:"source_file"`
	Revision               string   `json:"revision" yaml:"revision"`
	RendererTargets        []string `json:"renderer_targets" yaml:"renderer_targets"`
	PreserveLayoutFidelity bool     `json:"preserve_layout_fidelity" yaml:"preserve_layout_fidelity"`
}

// Theme holds the visual defaults keyed by profile.
type Theme struct {
	WordFormFidelity ThemeProfile `json:"word_form_fidelity" yaml:"word_form_fidelity"`
}

// ThemeProfile reproduces the look of the controlled Word form.
type ThemeProfile struct {
	FontFamily         string     `json:"fontFamily" yaml:"fontFamily"`
	FontSizePt         float64    `json:"fontSizePt" yaml:"fontSizePt"`
	LineHeight         float64    `json:"lineHeight" yaml:"lineHeight"`
	SectionTitleWeight int        `json:"sectionTitleWeight" yaml:"sectionTitleWeight"`
	BlockSpacingPx     int        `json:"blockSpacingPx" yaml:"blockSpacingPx"`
	Table              TableTheme `json:"table" yaml:"table"`
	Inputs             InputTheme `json:"inputs" yaml:"inputs"`
}

// TableTheme styles rendered tables.
type TableTheme struct {
	Border        string `json:"border" yaml:"border"`
	GridLines     bool   `json:"gridLines" yaml:"gridLines"`
	HeaderWeight  int    `json:"headerWeight" yaml:"headerWeight"`
	CellPaddingPx int    `json:"cellPaddingPx" yaml:"cellPaddingPx"`
}

// InputTheme sizes input widgets.
type InputTheme struct {
	Text        TextInputTheme     `json:"text" yaml:"text"`
	Textarea    TextareaInputTheme `json:"textarea" yaml:"textarea"`
	RadioInline bool               `json:"radioInline" yaml:"radioInline"`
}

// TextInputTheme sizes single-line inputs.
type TextInputTheme struct {
	HeightPx int `json:"heightPx" yaml:"heightPx"`
}

// TextareaInputTheme sizes multi-line inputs.
type TextareaInputTheme struct {
	MinHeightPx int `json:"minHeightPx" yaml:"minHeightPx"`
}
