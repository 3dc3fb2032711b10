package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the layout block in isolation: identifiers, column sets,
// header row counts and merged header spans.
func (l Layout) Validate() error {
	var errs []error
	if strings.TrimSpace(l.PageModel) == "" {
		errs = append(errs, errors.New("layout: pageModel is required"))
	}
	if strings.TrimSpace(l.TypographyLock.FontFamily) == "" {
		errs = append(errs, errors.New("layout: typography_lock.fontFamily is required"))
	}
	if l.TypographyLock.FontSizePt <= 0 || l.TypographyLock.LineHeight <= 0 {
		errs = append(errs, errors.New("layout: typography_lock sizes must be positive"))
	}

	seen := make(map[string]struct{}, len(l.Tables))
	for idx, table := range l.Tables {
		id := strings.TrimSpace(table.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("layout: table at index %d has an empty id", idx))
			continue
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("layout: duplicate table %q", id))
			continue
		}
		seen[id] = struct{}{}
		if err := table.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks a single table layout.
func (t TableLayout) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("layout: table %q: "+format, append([]any{t.ID}, args...)...))
	}

	if len(t.Columns) == 0 {
		fail("declares no columns")
	}
	keys := make(map[string]struct{}, len(t.Columns))
	for idx, column := range t.Columns {
		key := strings.TrimSpace(column.Key)
		if key == "" {
			fail("column %d has an empty key", idx)
			continue
		}
		if _, dup := keys[key]; dup {
			fail("column %q declared twice", key)
		}
		keys[key] = struct{}{}
		if strings.TrimSpace(column.Header) == "" {
			fail("column %q has an empty header", key)
		}
	}

	if t.HeaderRows < 0 {
		fail("header_rows must not be negative (got %d)", t.HeaderRows)
	}
	if len(t.MergedCells) > 0 && t.HeaderRows < 1 {
		fail("merged cells require header_rows >= 1")
	}
	spans := make(map[int][][2]int)
	for idx, cell := range t.MergedCells {
		switch {
		case cell.Row < 0 || (t.HeaderRows > 0 && cell.Row >= t.HeaderRows):
			fail("merged cell %d row %d outside header rows", idx, cell.Row)
		case cell.ColStart < 0 || cell.ColEnd >= len(t.Columns) || cell.ColStart > cell.ColEnd:
			fail("merged cell %d spans columns %d..%d outside 0..%d", idx, cell.ColStart, cell.ColEnd, len(t.Columns)-1)
		case strings.TrimSpace(cell.Label) == "":
			fail("merged cell %d has an empty label", idx)
		default:
			for _, span := range spans[cell.Row] {
				if cell.ColStart <= span[1] && span[0] <= cell.ColEnd {
					fail("merged cell %d overlaps columns %d..%d on row %d", idx, span[0], span[1], cell.Row)
				}
			}
			spans[cell.Row] = append(spans[cell.Row], [2]int{cell.ColStart, cell.ColEnd})
		}
	}

	prefilled := make(map[string]struct{}, len(t.PrefillRows))
	for idx, label := range t.PrefillRows {
		if strings.TrimSpace(label) == "" {
			fail("prefill row %d is empty", idx)
			continue
		}
		if _, dup := prefilled[label]; dup {
			fail("prefill row %q declared twice", label)
		}
		prefilled[label] = struct{}{}
	}
	return errors.Join(errs...)
}
