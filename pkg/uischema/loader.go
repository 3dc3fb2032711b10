package uischema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-psurgen/pkg/layout"
)

// Presentation is the parsed presentation document: every block of the
// generated template other than the schema, plus the bindings linking table
// layouts to schema tables.
type Presentation struct {
	Source   string
	Meta     Meta
	Theme    Theme
	Layout   layout.Layout
	Bindings []layout.Binding
	UI       UIConfig
}

// UIConfig is the authored form of the UI schema block. Section order is not
// authored; it comes from the schema builder's section keys.
type UIConfig struct {
	GlobalOptions GlobalOptions   `yaml:"globalOptions"`
	Sections      []SectionConfig `yaml:"sections"`
}

// SectionConfig carries the title and field hints for one section key.
type SectionConfig struct {
	Key    string    `yaml:"key"`
	Title  string    `yaml:"title"`
	Fields []FieldUI `yaml:"fields,omitempty"`
}

type documentFile struct {
	Meta   Meta       `yaml:"meta"`
	Theme  Theme      `yaml:"theme"`
	Layout layoutFile `yaml:"layout"`
	UI     UIConfig   `yaml:"ui"`
}

type layoutFile struct {
	layout.Layout `yaml:",inline"`
	Tables        []tableFile `yaml:"tables"`
}

type tableFile struct {
	layout.TableLayout `yaml:",inline"`
	Binding            string `yaml:"binding"`
	MatchColumns       bool   `yaml:"match_columns"`
}

// LoadDefault parses the embedded PSUR presentation document.
func LoadDefault() (Presentation, error) {
	return LoadFS(EmbeddedFS(), DefaultDocument)
}

// LoadFS reads and parses the named presentation document from fsys.
func LoadFS(fsys fs.FS, name string) (Presentation, error) {
	if fsys == nil {
		return Presentation{}, errors.New("uischema: presentation filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Presentation{}, fmt.Errorf("uischema: read %s: %w", name, err)
	}
	return Load(data, name)
}

// Load parses a presentation document. YAML is expected; JSON documents are
// accepted as a YAML subset. Unknown keys are rejected.
func Load(data []byte, source string) (Presentation, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Presentation{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	var doc documentFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Presentation{}, fmt.Errorf("uischema: file %s is empty", source)
		}
		return Presentation{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}

	out := Presentation{
		Source: source,
		Meta:   doc.Meta,
		Theme:  doc.Theme,
		Layout: doc.Layout.Layout,
		UI:     doc.UI,
	}
	out.Layout.Tables = make(layout.Tables, 0, len(doc.Layout.Tables))
	for _, table := range doc.Layout.Tables {
		id := strings.TrimSpace(table.ID)
		table.TableLayout.ID = id
		out.Layout.Tables = append(out.Layout.Tables, table.TableLayout)
		if strings.TrimSpace(table.Binding) == "" {
			continue
		}
		out.Bindings = append(out.Bindings, layout.Binding{
			Table:        id,
			Pointer:      strings.TrimSpace(table.Binding),
			MatchColumns: table.MatchColumns,
		})
	}
	return out, nil
}
