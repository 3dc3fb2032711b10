package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/goliatone/go-psurgen/internal/psur"
	"github.com/goliatone/go-psurgen/pkg/jsonschema"
	"github.com/goliatone/go-psurgen/pkg/layout"
	"github.com/goliatone/go-psurgen/pkg/schema"
	"github.com/goliatone/go-psurgen/pkg/uischema"
	"github.com/goliatone/go-psurgen/pkg/validation"
)

const defaultIndent = "  "

var rootKeys = []string{psur.PropForm, psur.PropCoverPage, psur.PropSections}

// SchemaBuilder produces the root schema and names its section keys, in the
// order the UI schema must present them.
type SchemaBuilder interface {
	Build() (*schema.Schema, error)
	SectionKeys() []string
}

// SchemaValidator inspects the serialized schema. A non-nil error aborts
// assembly.
type SchemaValidator func(raw []byte) error

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBuilder injects the schema builder. Defaults to the PSUR builder.
func WithBuilder(builder SchemaBuilder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithPresentation supplies an already parsed presentation document, which
// takes precedence over WithPresentationFS.
func WithPresentation(p uischema.Presentation) Option {
	return func(o *Orchestrator) {
		o.presentation = &p
	}
}

// WithPresentationFS reads the presentation document name from fsys instead
// of the embedded default.
func WithPresentationFS(fsys fs.FS, name string) Option {
	return func(o *Orchestrator) {
		o.presentationFS = fsys
		o.presentationName = name
	}
}

// WithLenientLayout reports layout/schema mismatches as warnings instead of
// failing assembly.
func WithLenientLayout() Option {
	return func(o *Orchestrator) {
		o.lenient = true
	}
}

// WithSchemaValidator replaces the Draft 2020-12 compile check run over the
// serialized schema. Pass nil to skip it.
func WithSchemaValidator(validator SchemaValidator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
		o.validatorSpecified = true
	}
}

// WithIndent overrides the two-space indentation of the encoded artifact.
func WithIndent(indent string) Option {
	return func(o *Orchestrator) {
		o.indent = indent
		o.indentSpecified = true
	}
}

// Orchestrator runs schema building, presentation loading, cross-checking and
// serialization. Defaults cover the PSUR form end to end so callers can start
// with a single constructor call.
type Orchestrator struct {
	builder            SchemaBuilder
	presentation       *uischema.Presentation
	presentationFS     fs.FS
	presentationName   string
	lenient            bool
	validator          SchemaValidator
	validatorSpecified bool
	indent             string
	indentSpecified    bool
	defaultsApplied    bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Assemble builds every block of the artifact and checks them against each
// other. Warnings are only returned in lenient layout mode.
func (o *Orchestrator) Assemble(ctx context.Context) (Artifact, []string, error) {
	if ctx == nil {
		return Artifact{}, nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, nil, err
	}
	o.applyDefaults()

	root, err := o.builder.Build()
	if err != nil {
		return Artifact{}, nil, &AssemblyError{Block: BlockSchema, Message: "build failed", Err: err}
	}
	sections, err := sectionsOf(root)
	if err != nil {
		return Artifact{}, nil, err
	}
	if err := uischema.CheckSchemaText(root); err != nil {
		return Artifact{}, nil, &AssemblyError{Block: BlockSchema, Message: "display text", Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Artifact{}, nil, err
	}
	presentation, err := o.loadPresentation()
	if err != nil {
		return Artifact{}, nil, err
	}
	keys := o.builder.SectionKeys()
	ui, err := presentation.UISchema(keys)
	if err != nil {
		return Artifact{}, nil, &AssemblyError{Block: BlockUISchema, Message: "section titles", Err: err}
	}
	if err := ui.Validate(keys, sections); err != nil {
		return Artifact{}, nil, &AssemblyError{Block: BlockUISchema, Message: "invalid", Err: err}
	}
	if err := checkLocks(presentation, ui); err != nil {
		return Artifact{}, nil, err
	}

	var warnings []string
	if issues := layout.CrossCheck(root, presentation.Layout.Tables, presentation.Bindings); len(issues) > 0 {
		if !o.lenient {
			return Artifact{}, nil, crossCheckError(issues)
		}
		for _, issue := range issues {
			warnings = append(warnings, issue.Error())
		}
	}

	if err := ctx.Err(); err != nil {
		return Artifact{}, nil, err
	}
	if err := o.verify(root); err != nil {
		return Artifact{}, nil, err
	}

	return Artifact{
		Meta:     presentation.Meta,
		Schema:   root,
		UISchema: ui,
		Layout:   presentation.Layout,
		Theme:    presentation.Theme,
	}, warnings, nil
}

// Generate assembles the artifact and writes it to path atomically.
func (o *Orchestrator) Generate(ctx context.Context, path string) (Result, error) {
	if path == "" {
		return Result{}, errors.New("orchestrator: output path is required")
	}
	artifact, warnings, err := o.Assemble(ctx)
	if err != nil {
		return Result{}, err
	}
	data, err := Encode(artifact, o.indent)
	if err != nil {
		return Result{}, &AssemblyError{Block: BlockArtifact, Message: "encode", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := WriteFile(path, data); err != nil {
		return Result{}, err
	}
	return Result{Path: path, Size: len(data), Bytes: data, Warnings: warnings}, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	if o.builder == nil {
		o.builder = psur.NewBuilder()
	}
	if o.presentationFS == nil {
		o.presentationFS = uischema.EmbeddedFS()
	}
	if o.presentationName == "" {
		o.presentationName = uischema.DefaultDocument
	}
	if !o.validatorSpecified {
		o.validator = func(raw []byte) error {
			return validation.ValidateJSONSchema(raw).Err()
		}
	}
	if !o.indentSpecified {
		o.indent = defaultIndent
	}
	o.defaultsApplied = true
}

func (o *Orchestrator) loadPresentation() (uischema.Presentation, error) {
	var (
		presentation uischema.Presentation
		err          error
	)
	if o.presentation != nil {
		presentation = *o.presentation
	} else {
		presentation, err = uischema.LoadFS(o.presentationFS, o.presentationName)
		if err != nil {
			return uischema.Presentation{}, &AssemblyError{Block: BlockPresentation, Path: o.presentationName, Message: "load", Err: err}
		}
	}
	if err := presentation.Validate(); err != nil {
		return uischema.Presentation{}, &AssemblyError{Block: BlockPresentation, Path: presentation.Source, Message: "invalid", Err: err}
	}
	return presentation, nil
}

// verify serializes the schema and checks it as a standalone document.
func (o *Orchestrator) verify(root *schema.Schema) error {
	raw, err := json.Marshal(root)
	if err != nil {
		return &AssemblyError{Block: BlockSchema, Message: "encode", Err: err}
	}
	if err := jsonschema.CheckRefsJSON(raw); err != nil {
		return &AssemblyError{Block: BlockSchema, Message: "unresolved reference", Err: err}
	}
	if o.validator != nil {
		if err := o.validator(raw); err != nil {
			return &AssemblyError{Block: BlockSchema, Message: "not a valid Draft 2020-12 schema", Err: err}
		}
	}
	return nil
}

func sectionsOf(root *schema.Schema) (*schema.Schema, error) {
	if root == nil {
		return nil, &AssemblyError{Block: BlockSchema, Message: "builder returned no schema"}
	}
	for _, key := range rootKeys {
		if !root.Properties.Has(key) {
			return nil, &AssemblyError{Block: BlockSchema, Path: "#/properties/" + key, Message: fmt.Sprintf("root schema has no %s property", key)}
		}
		if !slices.Contains(root.Required, key) {
			return nil, &AssemblyError{Block: BlockSchema, Path: "#/required", Message: fmt.Sprintf("root schema does not require %s", key)}
		}
	}
	pointer := schema.Pointer("$defs", psur.DefSections)
	sections, err := schema.Lookup(root, pointer)
	if err != nil {
		return nil, &AssemblyError{Block: BlockSchema, Path: pointer, Message: "sections definition missing", Err: err}
	}
	return sections, nil
}

func checkLocks(p uischema.Presentation, ui uischema.UISchema) error {
	var errs []error
	if ui.GlobalOptions.LockSectionOrder != p.Layout.SectionOrderLocked {
		errs = append(errs, fmt.Errorf("lockSectionOrder=%t but section_order_locked=%t",
			ui.GlobalOptions.LockSectionOrder, p.Layout.SectionOrderLocked))
	}
	theme := p.Theme.WordFormFidelity
	lock := p.Layout.TypographyLock
	if lock.FontFamily != theme.FontFamily || lock.FontSizePt != theme.FontSizePt || lock.LineHeight != theme.LineHeight {
		errs = append(errs, fmt.Errorf("typography_lock %s %gpt/%g does not match theme %s %gpt/%g",
			lock.FontFamily, lock.FontSizePt, lock.LineHeight, theme.FontFamily, theme.FontSizePt, theme.LineHeight))
	}
	if err := errors.Join(errs...); err != nil {
		return &AssemblyError{Block: BlockLayout, Message: "locks disagree", Err: err}
	}
	return nil
}

func crossCheckError(issues []layout.Issue) error {
	errs := make([]error, 0, len(issues))
	for _, issue := range issues {
		errs = append(errs, issue)
	}
	first := issues[0]
	return &AssemblyError{
		Block:   BlockLayout,
		Path:    first.Table,
		Message: fmt.Sprintf("%d layout/schema mismatch(es)", len(issues)),
		Err:     errors.Join(errs...),
	}
}
