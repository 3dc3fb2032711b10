package layout

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-psurgen/internal/jsonutil"
)

// Layout is the page-level rendering contract handed to renderers.
type Layout struct {
	PageModel          string     `json:"pageModel" yaml:"pageModel"`
	SectionOrderLocked bool       `json:"section_order_locked" yaml:"section_order_locked"`
	TypographyLock     Typography `json:"typography_lock" yaml:"typography_lock"`
	Tables             Tables     `json:"tables" yaml:"-"`
}

// Typography pins the font settings renderers must not override.
type Typography struct {
	FontFamily string  `json:"fontFamily" yaml:"fontFamily"`
	FontSizePt float64 `json:"fontSizePt" yaml:"fontSizePt"`
	LineHeight float64 `json:"lineHeight" yaml:"lineHeight"`
}

// Column is one rendered table column.
type Column struct {
	Key    string `json:"key" yaml:"key"`
	Header string `json:"header" yaml:"header"`
}

// MergedCell spans header columns ColStart..ColEnd (inclusive) on Row.
type MergedCell struct {
	Row      int    `json:"row" yaml:"row"`
	ColStart int    `json:"col_start" yaml:"col_start"`
	ColEnd   int    `json:"col_end" yaml:"col_end"`
	Label    string `json:"label" yaml:"label"`
}

// TableLayout describes custom header rendering for one table. ID is the
// renderer-facing identifier ("C.table_1_annual_sales") and is emitted as the
// key of the enclosing tables object.
type TableLayout struct {
	ID          string       `json:"-" yaml:"id"`
	Columns     []Column     `json:"columns" yaml:"columns"`
	HeaderRows  int          `json:"header_rows,omitempty" yaml:"header_rows,omitempty"`
	MergedCells []MergedCell `json:"merged_cells,omitempty" yaml:"merged_cells,omitempty"`
	PrefillRows []string     `json:"prefill_rows,omitempty" yaml:"prefill_rows,omitempty"`
}

// Keys returns the column keys in order.
func (t TableLayout) Keys() []string {
	keys := make([]string, len(t.Columns))
	for idx, column := range t.Columns {
		keys[idx] = column.Key
	}
	return keys
}

// Tables is an ordered collection of table layouts that serialises as an
// object keyed by table identifier.
type Tables []TableLayout

// Get returns the layout registered under id.
func (t Tables) Get(id string) (TableLayout, bool) {
	for _, table := range t {
		if table.ID == id {
			return table, true
		}
	}
	return TableLayout{}, false
}

// IDs returns the table identifiers in order.
func (t Tables) IDs() []string {
	ids := make([]string, len(t))
	for idx, table := range t {
		ids[idx] = table.ID
	}
	return ids
}

// MarshalJSON implements json.Marshaler.
func (t Tables) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, TableLayout]()
	for _, table := range t {
		if _, exists := om.Get(table.ID); exists {
			return nil, fmt.Errorf("layout: duplicate table %q", table.ID)
		}
		om.Set(table.ID, table)
	}
	return jsonutil.MarshalOrdered(om)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tables) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, json.RawMessage]()
	if err := om.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("layout: decode tables: %w", err)
	}
	out := make(Tables, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		var table TableLayout
		if err := json.Unmarshal(pair.Value, &table); err != nil {
			return fmt.Errorf("layout: decode table %q: %w", pair.Key, err)
		}
		table.ID = pair.Key
		out = append(out, table)
	}
	*t = out
	return nil
}
