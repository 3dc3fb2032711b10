package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKnown(t *testing.T) {
	for _, name := range []string{Text, Textarea, Select, Checkbox, Date, Number, Table} {
		if !Known(name) {
			t.Fatalf("expected %q to be known", name)
		}
	}
	if Known("toggle") {
		t.Fatalf("unexpected widget toggle reported as known")
	}
	if Known(HierarchicalTable) {
		t.Fatalf("field renderers are not input widgets")
	}
}

func TestNames_Sorted(t *testing.T) {
	want := []string{"checkbox", "date", "number", "select", "table", "text", "textarea"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
