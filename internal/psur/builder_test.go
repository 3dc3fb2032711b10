package psur

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-psurgen/pkg/schema"
)

func mustBuild(t *testing.T) *schema.Schema {
	t.Helper()
	root, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return root
}

func TestBuild_RootContract(t *testing.T) {
	root := mustBuild(t)

	if diff := cmp.Diff([]string{"form", "psur_cover_page", "sections"}, root.Required); diff != "" {
		t.Fatalf("root required mismatch (-want +got):\n%s", diff)
	}
	if root.Version != schema.Draft || root.ID != SchemaID {
		t.Fatalf("unexpected $schema/$id: %q %q", root.Version, root.ID)
	}
	if root.AdditionalProperties == nil || *root.AdditionalProperties {
		t.Fatalf("root must be closed")
	}
	sections, _ := root.Properties.Get(PropSections)
	if sections == nil || sections.Ref != "#/$defs/sections" {
		t.Fatalf("expected sections to reference $defs, got %+v", sections)
	}
	wantDefs := []string{DefTriState, DefYesNoNA, DefMDRClass, DefUSFDAClass, DefSections}
	if diff := cmp.Diff(wantDefs, root.Defs.Names()); diff != "" {
		t.Fatalf("$defs mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SharedEnumerations(t *testing.T) {
	root := mustBuild(t)
	cases := map[string][]any{
		DefTriState:   {"YES", "NO", NotSelected},
		DefYesNoNA:    {"YES", "NO", "N_A", NotSelected},
		DefMDRClass:   {"CLASS_IIA", "CLASS_IIB", "CLASS_III", NotSelected},
		DefUSFDAClass: {"CLASS_I", "CLASS_II", "CLASS_III", NotSelected},
	}
	for name, want := range cases {
		def, ok := root.Defs.Get(name)
		if !ok {
			t.Fatalf("definition %s missing", name)
		}
		if diff := cmp.Diff(want, def.Enum); diff != "" {
			t.Fatalf("%s enum mismatch (-want +got):\n%s", name, diff)
		}
		if def.Default != NotSelected {
			t.Fatalf("%s default = %v", name, def.Default)
		}
	}

	// Sections reference the shared enumerations instead of repeating them.
	tri := cases[DefTriState]
	_ = schema.Walk(root, func(pointer string, node *schema.Schema) error {
		if strings.HasPrefix(pointer, "#/$defs/"+DefTriState) {
			return nil
		}
		if cmp.Equal(tri, node.Enum) {
			t.Fatalf("TriState redefined at %s", pointer)
		}
		return nil
	})
}

func TestBuild_SectionBijection(t *testing.T) {
	root := mustBuild(t)
	sections, ok := root.Defs.Get(DefSections)
	if !ok {
		t.Fatalf("sections definition missing")
	}
	if diff := cmp.Diff(SectionKeys(), sections.Required); diff != "" {
		t.Fatalf("sections required mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(SectionKeys(), sections.Properties.Names()); diff != "" {
		t.Fatalf("populated sections mismatch (-want +got):\n%s", diff)
	}
	if len(SectionKeys()) != 13 {
		t.Fatalf("expected 13 section keys, got %d", len(SectionKeys()))
	}
}

func TestBuild_DeclaredButNotPopulated(t *testing.T) {
	b := NewBuilder()
	b.sections = b.sections[:len(b.sections)-1]

	_, err := b.Build()
	assertConstructionError(t, err, `"M_findings_and_conclusions" declared but never populated`)
}

func TestBuild_PopulatedButNotDeclared(t *testing.T) {
	b := NewBuilder()
	b.sections = append(b.sections, Section{
		Key:   "N_extra",
		Build: func(*Builder) *schema.Schema { return schema.Object(schema.Prop("x", schema.String())) },
	})

	_, err := b.Build()
	assertConstructionError(t, err, `"N_extra" populated but not declared`)
}

func TestBuild_DuplicateSection(t *testing.T) {
	b := NewBuilder()
	b.sections = append(b.sections, b.sections[0])

	_, err := b.Build()
	assertConstructionError(t, err, "populated twice")
}

func TestBuild_TableFailureIsSticky(t *testing.T) {
	b := NewBuilder()
	calls := 0
	b.sections[0] = Section{
		Key: SectionExecutiveSummary,
		Build: func(b *Builder) *schema.Schema {
			table := b.table("#/broken", []string{"a", "b"}, []schema.Property{schema.Prop("a", schema.String())})
			return schema.Object(schema.Prop("rows", table))
		},
	}
	b.sections[1] = Section{
		Key: SectionScope,
		Build: func(*Builder) *schema.Schema {
			calls++
			return schema.Object()
		},
	}

	root, err := b.Build()
	if root != nil {
		t.Fatalf("expected no schema on failure")
	}
	var cerr *schema.ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *schema.ConstructionError, got %v", err)
	}
	if cerr.Path != "#/broken" {
		t.Fatalf("expected error scoped to table path, got %q", cerr.Path)
	}
	if calls != 0 {
		t.Fatalf("expected later sections to be skipped after the first failure")
	}
}

func TestBuild_UndeclaredRuleConsequence(t *testing.T) {
	b := NewBuilder()
	b.sections[0] = Section{
		Key: SectionExecutiveSummary,
		Build: func(*Builder) *schema.Schema {
			return schema.Object(schema.Prop("changed", schema.Ref(DefTriState))).
				RequireWhen("changed", "YES", "justification")
		},
	}
	_, err := b.Build()
	assertConstructionError(t, err, `undeclared property "justification"`)
}

func TestBuild_RuleConsequencesAreDeclared(t *testing.T) {
	root := mustBuild(t)
	rules := 0
	_ = schema.Walk(root, func(pointer string, node *schema.Schema) error {
		for _, rule := range node.AllOf {
			rules++
			for _, name := range rule.Then.Required {
				if !node.Properties.Has(name) {
					t.Fatalf("rule at %s requires undeclared %q", pointer, name)
				}
			}
			for _, name := range rule.If.Properties.Names() {
				if !node.Properties.Has(name) {
					t.Fatalf("rule at %s conditions on undeclared %q", pointer, name)
				}
			}
		}
		return nil
	})
	// Cover page 2, A 2, B 2, C 2, F 2.
	if rules != 10 {
		t.Fatalf("expected 10 conditional rules, got %d", rules)
	}
}

func TestBuild_TablesRequireDeclaredColumns(t *testing.T) {
	root := mustBuild(t)
	tables := 0
	_ = schema.Walk(root, func(pointer string, node *schema.Schema) error {
		if !node.IsTable() {
			return nil
		}
		tables++
		for _, name := range node.Items.Required {
			if !node.Items.Properties.Has(name) {
				t.Fatalf("table %s requires undeclared column %q", pointer, name)
			}
		}
		return nil
	})
	if tables != 16 {
		t.Fatalf("expected 16 tables, got %d", tables)
	}
}

func TestBuild_SalesVariantSelection(t *testing.T) {
	root := mustBuild(t)
	sales, err := schema.Lookup(root, "#/$defs/sections/properties/"+SectionSales+"/properties/table_1_sales_by_region")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if diff := cmp.Diff([]string{"annual_format"}, sales.ConditionallyRequired("use_if_psur_frequency", FrequencyAnnually)); diff != "" {
		t.Fatalf("ANNUALLY mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"every_two_years_format"}, sales.ConditionallyRequired("use_if_psur_frequency", FrequencyEveryTwoYears)); diff != "" {
		t.Fatalf("EVERY_TWO_YEARS mismatch (-want +got):\n%s", diff)
	}
	for _, name := range sales.Required {
		if name == "annual_format" || name == "every_two_years_format" {
			t.Fatalf("payload %q must not be unconditionally required", name)
		}
	}
}

func TestBuild_ComplaintVariantSelection(t *testing.T) {
	root := mustBuild(t)
	table, err := schema.Lookup(root, "#/$defs/sections/properties/"+SectionComplaints+"/properties/table_7_complaint_rate_and_count")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if diff := cmp.Diff([]string{"annual_format"}, table.ConditionallyRequired("use_if_psur_frequency", FrequencyAnnually)); diff != "" {
		t.Fatalf("ANNUALLY mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"every_two_years_format"}, table.ConditionallyRequired("use_if_psur_frequency", FrequencyEveryTwoYears)); diff != "" {
		t.Fatalf("EVERY_TWO_YEARS mismatch (-want +got):\n%s", diff)
	}
	annual, _ := table.Properties.Get("annual_format")
	if diff := cmp.Diff([]string{"date_range", "rows"}, annual.Required); diff != "" {
		t.Fatalf("annual payload required mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_IsDeterministicAndDetached(t *testing.T) {
	b := NewBuilder()
	first, err := b.Build()
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := b.Build()
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("builds differ (-first +second):\n%s", diff)
	}
	first.Title = "mutated"
	if second.Title == "mutated" {
		t.Fatalf("builds share state")
	}
}

func assertConstructionError(t *testing.T, err error, fragment string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected construction error containing %q", fragment)
	}
	var cerr *schema.ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *schema.ConstructionError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Fatalf("expected error containing %q, got %v", fragment, err)
	}
}
