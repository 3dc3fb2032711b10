package layout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-psurgen/pkg/schema"
)

func sampleLayout() Layout {
	return Layout{
		PageModel:          "A4",
		SectionOrderLocked: true,
		TypographyLock:     Typography{FontFamily: "Arial", FontSizePt: 10, LineHeight: 1.15},
		Tables: Tables{
			{
				ID: "Z.sales",
				Columns: []Column{
					{Key: "region", Header: "Region"},
					{Key: "p1", Header: "Period 1"},
					{Key: "p2", Header: "Period 2"},
				},
				HeaderRows:  2,
				MergedCells: []MergedCell{{Row: 0, ColStart: 1, ColEnd: 2, Label: "Preceding Periods"}},
			},
			{
				ID:          "A.documents",
				Columns:     []Column{{Key: "document_type", Header: "Document Type"}},
				PrefillRows: []string{"PMS Plan"},
			},
		},
	}
}

func TestLayout_ValidateAcceptsSample(t *testing.T) {
	if err := sampleLayout().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLayout_ValidateRejects(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Layout)
		want   string
	}{
		"empty page model": {
			mutate: func(l *Layout) { l.PageModel = "" },
			want:   "pageModel",
		},
		"duplicate table": {
			mutate: func(l *Layout) { l.Tables = append(l.Tables, l.Tables[0]) },
			want:   `duplicate table "Z.sales"`,
		},
		"duplicate column": {
			mutate: func(l *Layout) { l.Tables[1].Columns = append(l.Tables[1].Columns, l.Tables[1].Columns[0]) },
			want:   "declared twice",
		},
		"merge outside columns": {
			mutate: func(l *Layout) { l.Tables[0].MergedCells[0].ColEnd = 3 },
			want:   "outside 0..2",
		},
		"merge outside header rows": {
			mutate: func(l *Layout) { l.Tables[0].MergedCells[0].Row = 2 },
			want:   "outside header rows",
		},
		"merge without header rows": {
			mutate: func(l *Layout) { l.Tables[0].HeaderRows = 0 },
			want:   "header_rows >= 1",
		},
		"overlapping merges": {
			mutate: func(l *Layout) {
				l.Tables[0].MergedCells = append(l.Tables[0].MergedCells, MergedCell{Row: 0, ColStart: 2, ColEnd: 2, Label: "x"})
			},
			want: "overlaps",
		},
		"empty header": {
			mutate: func(l *Layout) { l.Tables[1].Columns[0].Header = " " },
			want:   "empty header",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			l := sampleLayout()
			tc.mutate(&l)
			err := l.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestTables_JSONKeepsOrder(t *testing.T) {
	tables := sampleLayout().Tables
	raw, err := json.Marshal(tables)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if idx := strings.Index(string(raw), `"Z.sales"`); idx != 1 {
		t.Fatalf("expected declaration order in output, got %s", raw)
	}
	var decoded Tables
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(tables, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func crossCheckSchema(t *testing.T) *schema.Schema {
	t.Helper()
	docs, err := schema.Table([]string{"document_type"}, []schema.Property{
		schema.Prop("document_type", schema.Enum("PMS Plan", "Other")),
		schema.Prop("document_number", schema.Text()),
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	return schema.Object(
		schema.Prop("docs", docs),
		schema.Prop("note", schema.String()),
	)
}

func TestCrossCheck_Clean(t *testing.T) {
	root := crossCheckSchema(t)
	tables := Tables{{ID: "B.docs", Columns: []Column{{Key: "document_type", Header: "Type"}}, PrefillRows: []string{"PMS Plan"}}}
	bindings := []Binding{{Table: "B.docs", Pointer: "#/properties/docs", MatchColumns: true}}

	if issues := CrossCheck(root, tables, bindings); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestCrossCheck_Issues(t *testing.T) {
	root := crossCheckSchema(t)
	tables := Tables{
		{ID: "B.docs", Columns: []Column{{Key: "document_type", Header: "Type"}, {Key: "extra", Header: "Extra"}}, PrefillRows: []string{"Unknown Plan"}},
		{ID: "B.note", Columns: []Column{{Key: "note", Header: "Note"}}},
		{ID: "B.dangling", Columns: []Column{{Key: "x", Header: "X"}}},
		{ID: "B.unbound", Columns: []Column{{Key: "x", Header: "X"}}},
	}
	bindings := []Binding{
		{Table: "B.docs", Pointer: "#/properties/docs", MatchColumns: true},
		{Table: "B.note", Pointer: "#/properties/note"},
		{Table: "B.dangling", Pointer: "#/properties/missing"},
		{Table: "B.ghost", Pointer: "#/properties/docs"},
	}

	var got []string
	for _, issue := range CrossCheck(root, tables, bindings) {
		got = append(got, issue.Table+": "+issue.Message)
	}
	want := []string{
		"B.ghost: binding names an unknown table layout",
		`B.docs: column "extra" is not a declared row property`,
		`B.docs: prefill row "Unknown Plan" is not an allowed document_type value`,
		"B.note: binding target is not a table schema",
		"B.dangling: binding does not resolve to a declared schema",
		"B.unbound: no schema binding",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}
