package psur

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-psurgen/pkg/schema"
	"github.com/goliatone/go-psurgen/pkg/widgets"
)

const (
	// SchemaID is the $id of the generated root schema.
	SchemaID = "urn:coopersurgical:psur:FormQAR-054:ui-schema:revC"
	// FormID is the controlled form identifier.
	FormID = "FormQAR-054"
	// FormTitle is the controlled form title.
	FormTitle = "Periodic Safety Update Report (PSUR)"
	// Revision is the form revision the declarations describe.
	Revision = "C"

	schemaTitle       = "FormQAR-054 PSUR UI Schema (Rev C)"
	schemaDescription = "UI-oriented JSON Schema for FormQAR-054 (PSUR). Includes field types, required/optional, validation rules, and basic UI hints."
)

// Root property names.
const (
	PropForm          = "form"
	PropCoverPage     = "psur_cover_page"
	PropSections      = "sections"
	DefSections       = "sections"
	frequencyProperty = "use_if_psur_frequency"
)

// PSUR cadence values used by the cover page and the format variants.
const (
	FrequencyAnnually      = "ANNUALLY"
	FrequencyEveryTwoYears = "EVERY_TWO_YEARS"
)

// Section pairs a section key with the declaration that populates it.
type Section struct {
	Key   string
	Build func(b *Builder) *schema.Schema
}

// Builder assembles the PSUR root schema. The first construction failure is
// retained and returned by Build; later declarations become no-ops.
type Builder struct {
	keys     []string
	sections []Section
	err      error
}

// NewBuilder returns a Builder declaring the thirteen PSUR sections.
func NewBuilder() *Builder {
	return &Builder{
		keys:     SectionKeys(),
		sections: defaultSections(),
	}
}

// SectionKeys returns the section keys the builder declares, in order.
func (b *Builder) SectionKeys() []string {
	return append([]string(nil), b.keys...)
}

// Build declares the full form and returns a finalized deep copy of the root
// schema. Each call starts from scratch, so repeated calls yield equal trees.
func (b *Builder) Build() (*schema.Schema, error) {
	b.err = nil

	root := schema.Object(
		schema.Prop(PropForm, b.form()),
		schema.Prop(PropCoverPage, b.coverPage()),
		schema.Prop(PropSections, schema.Ref(DefSections)),
	).Require(PropForm, PropCoverPage, PropSections)
	root.Version = schema.Draft
	root.ID = SchemaID
	root.Title = schemaTitle
	root.Description = schemaDescription

	sections := schema.Object().Require(b.keys...)
	for _, section := range b.sections {
		if b.err != nil {
			break
		}
		if section.Build == nil {
			b.failf(sectionPointer(section.Key), "section %q has no declaration", section.Key)
			break
		}
		if sections.Properties.Has(section.Key) {
			b.failf(sectionPointer(section.Key), "section %q populated twice", section.Key)
			break
		}
		declared := section.Build(b)
		if declared == nil && b.err == nil {
			b.failf(sectionPointer(section.Key), "section %q declaration returned no schema", section.Key)
		}
		sections.Properties.Set(section.Key, declared)
	}
	if b.err != nil {
		return nil, fmt.Errorf("psur: build schema: %w", b.err)
	}
	root.Defs = append(sharedDefinitions(), schema.Prop(DefSections, sections))

	if err := checkBijection(b.keys, sections.Properties.Names()); err != nil {
		return nil, fmt.Errorf("psur: build schema: %w", err)
	}
	if err := schema.Check(root); err != nil {
		return nil, fmt.Errorf("psur: build schema: %w", err)
	}
	return root.Clone(), nil
}

func checkBijection(declared, populated []string) error {
	var errs []error
	populatedSet := make(map[string]struct{}, len(populated))
	for _, key := range populated {
		populatedSet[key] = struct{}{}
	}
	declaredSet := make(map[string]struct{}, len(declared))
	for _, key := range declared {
		if _, dup := declaredSet[key]; dup {
			errs = append(errs, &schema.ConstructionError{Path: sectionsPointer(), Message: fmt.Sprintf("section %q declared twice", key)})
			continue
		}
		declaredSet[key] = struct{}{}
		if _, ok := populatedSet[key]; !ok {
			errs = append(errs, &schema.ConstructionError{Path: sectionsPointer(), Message: fmt.Sprintf("section %q declared but never populated", key)})
		}
	}
	for _, key := range populated {
		if _, ok := declaredSet[key]; !ok {
			errs = append(errs, &schema.ConstructionError{Path: sectionPointer(key), Message: fmt.Sprintf("section %q populated but not declared", key)})
		}
	}
	return errors.Join(errs...)
}

func (b *Builder) fail(path string, err error) {
	if b.err != nil || err == nil {
		return
	}
	var cerr *schema.ConstructionError
	if errors.As(err, &cerr) && cerr.Path == "" {
		scoped := *cerr
		scoped.Path = path
		b.err = &scoped
		return
	}
	b.err = err
}

func (b *Builder) failf(path, format string, args ...any) {
	b.fail(path, &schema.ConstructionError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// table wraps schema.Table, recording failures against path.
func (b *Builder) table(path string, required []string, columns []schema.Property, options ...schema.TableOption) *schema.Schema {
	if b.err != nil {
		return nil
	}
	table, err := schema.Table(required, columns, options...)
	if err != nil {
		b.fail(path, err)
		return nil
	}
	return table
}

// frequencyVariant wraps schema.Variant keyed on the PSUR frequency discriminator.
func (b *Builder) frequencyVariant(path string, annual, biennial *schema.Schema) *schema.Schema {
	if b.err != nil {
		return nil
	}
	out, err := schema.Variant(frequencyProperty,
		schema.Case(FrequencyAnnually, "annual_format", annual),
		schema.Case(FrequencyEveryTwoYears, "every_two_years_format", biennial),
	)
	if err != nil {
		b.fail(path, err)
		return nil
	}
	return out
}

func sectionsPointer() string {
	return schema.Pointer("$defs", DefSections)
}

func sectionPointer(key string) string {
	return schema.Pointer("$defs", DefSections, "properties", key)
}

// Field helpers shared by the section declarations.

func textarea() *schema.Schema { return schema.String().Widget(widgets.Textarea) }

func textInput() *schema.Schema { return schema.String().Widget(widgets.Text) }

func choice(definition string) *schema.Schema {
	return schema.Ref(definition).Widget(widgets.Select)
}

func flag(value bool) *schema.Schema { return schema.Boolean().WithDefault(value) }

func date() *schema.Schema { return schema.Date() }

func count() *schema.Schema { return schema.Nullable(schema.TypeInteger).WithMinimum(0) }

func rate() *schema.Schema { return schema.Nullable(schema.TypeNumber).WithMinimum(0) }

func percent() *schema.Schema {
	return schema.Nullable(schema.TypeNumber).WithRange(0, 100)
}

func lines() *schema.Schema { return schema.Array(schema.Text()).WithMinItems(1) }

func dateRanges(n int) *schema.Schema { return schema.Array(schema.String()).WithLength(n) }

func selectEnum(defaultValue string, values ...string) *schema.Schema {
	out := schema.Enum(values...).Widget(widgets.Select)
	if defaultValue != "" {
		out.WithDefault(defaultValue)
	}
	return out
}

func notSelectedEnum(values ...string) *schema.Schema {
	all := append(append([]string(nil), values...), NotSelected)
	return schema.Enum(all...).WithDefault(NotSelected)
}
