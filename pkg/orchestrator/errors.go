package orchestrator

import "fmt"

// Artifact block names used in AssemblyError.
const (
	BlockSchema       = "schema"
	BlockPresentation = "presentation"
	BlockUISchema     = "uiSchema"
	BlockLayout       = "layout"
	BlockArtifact     = "artifact"
)

// AssemblyError reports an artifact block that is missing, malformed or
// inconsistent with another block.
type AssemblyError struct {
	Block   string
	Path    string
	Message string
	Err     error
}

func (e *AssemblyError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("orchestrator: %s: %s", e.Block, e.Message)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AssemblyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// OutputError reports a failure writing the artifact to disk.
type OutputError struct {
	Op   string
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("orchestrator: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
