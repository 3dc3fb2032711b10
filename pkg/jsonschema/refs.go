package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const defaultMaxRefDepth = 64

// RefOptions configures CheckRefs.
type RefOptions struct {
	// MaxRefDepth caps the length of $ref chains (a ref whose target is itself
	// a ref).
	MaxRefDepth int
}

// RefOption mutates RefOptions.
type RefOption func(*RefOptions)

// WithMaxRefDepth overrides the maximum $ref chain length.
func WithMaxRefDepth(depth int) RefOption {
	return func(opts *RefOptions) {
		if depth > 0 {
			opts.MaxRefDepth = depth
		}
	}
}

// RefError describes a $ref that cannot be resolved inside the document.
type RefError struct {
	Pointer string
	Ref     string
	Message string
}

func (e *RefError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("jsonschema refs: %s (%s at %s)", e.Message, e.Ref, e.Pointer)
}

// CheckRefsJSON decodes raw and runs CheckRefs over it.
func CheckRefsJSON(raw []byte, opts ...RefOption) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("jsonschema refs: decode: %w", err)
	}
	return CheckRefs(doc, opts...)
}

// CheckRefs verifies that every $ref in a decoded schema document resolves
// locally, either through a JSON pointer fragment or a $anchor. Refs that
// name another document are rejected unless they name the root $id. Chains
// of refs are followed and cycles reported. All problems are joined.
func CheckRefs(doc any, opts ...RefOption) error {
	options := RefOptions{MaxRefDepth: defaultMaxRefDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return errors.New("jsonschema refs: document root is not an object")
	}

	anchors := make(map[string]string)
	if err := indexAnchors(root, "#", anchors); err != nil {
		return err
	}
	rootID, _ := root["$id"].(string)

	checker := refChecker{
		root:    root,
		rootID:  strings.TrimSpace(rootID),
		anchors: anchors,
		opts:    options,
	}
	var errs []error
	collectRefs(root, "#", func(pointer, ref string) {
		if err := checker.check(pointer, ref); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

type refChecker struct {
	root    map[string]any
	rootID  string
	anchors map[string]string
	opts    RefOptions
}

func (c refChecker) check(pointer, ref string) error {
	state := &resolveState{}
	current := ref
	for {
		fragment, err := c.localFragment(current)
		if err != nil {
			return &RefError{Pointer: pointer, Ref: ref, Message: err.Error()}
		}
		if state.contains(fragment) {
			return &RefError{Pointer: pointer, Ref: ref, Message: "ref cycle detected at " + current}
		}
		if len(state.stack) >= c.opts.MaxRefDepth {
			return &RefError{Pointer: pointer, Ref: ref, Message: fmt.Sprintf("ref depth exceeds %d", c.opts.MaxRefDepth)}
		}
		target, err := c.resolveFragment(fragment)
		if err != nil {
			return &RefError{Pointer: pointer, Ref: ref, Message: err.Error()}
		}
		state.push(fragment)

		next, ok := target.(map[string]any)
		if !ok {
			return nil
		}
		nested, _ := next["$ref"].(string)
		if strings.TrimSpace(nested) == "" {
			return nil
		}
		current = strings.TrimSpace(nested)
	}
}

// localFragment returns the fragment of ref when it targets this document.
func (c refChecker) localFragment(ref string) (string, error) {
	refPath, fragment := splitRef(ref)
	if refPath == "" || (c.rootID != "" && refPath == c.rootID) {
		return fragment, nil
	}
	parsed, err := url.Parse(refPath)
	if err != nil {
		return "", fmt.Errorf("invalid ref %q", ref)
	}
	if parsed.Scheme != "" {
		return "", fmt.Errorf("remote refs are not allowed (scheme %q)", parsed.Scheme)
	}
	return "", errors.New("relative document refs are not allowed")
}

func (c refChecker) resolveFragment(fragment string) (any, error) {
	if fragment == "" {
		return c.root, nil
	}
	if strings.HasPrefix(fragment, "/") {
		return resolveJSONPointer(c.root, fragment)
	}
	pointer, ok := c.anchors[fragment]
	if !ok {
		return nil, fmt.Errorf("anchor %q not found", fragment)
	}
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" {
		return c.root, nil
	}
	return resolveJSONPointer(c.root, pointer)
}

// collectRefs reports every $ref in document order of sorted keys, so the
// joined error is stable across runs.
func collectRefs(node any, pointer string, fn func(pointer, ref string)) {
	switch typed := node.(type) {
	case map[string]any:
		if ref, ok := typed["$ref"].(string); ok {
			fn(pointer, strings.TrimSpace(ref))
		}
		for _, key := range sortedKeys(typed) {
			if key == "$ref" || key == "const" || key == "enum" || key == "default" {
				continue
			}
			collectRefs(typed[key], joinPath(pointer, key), fn)
		}
	case []any:
		for idx, value := range typed {
			collectRefs(value, joinPath(pointer, strconv.Itoa(idx)), fn)
		}
	}
}

func splitRef(ref string) (string, string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func resolveJSONPointer(root any, pointer string) (any, error) {
	if pointer == "" || pointer == "#" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid json pointer %q", pointer)
	}

	current := root
	for _, part := range strings.Split(pointer, "/")[1:] {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, fmt.Errorf("invalid json pointer %q: %w", pointer, err)
		}
		decoded = strings.ReplaceAll(decoded, "~1", "/")
		decoded = strings.ReplaceAll(decoded, "~0", "~")

		switch typed := current.(type) {
		case map[string]any:
			value, ok := typed[decoded]
			if !ok {
				return nil, fmt.Errorf("pointer %q not found", pointer)
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(decoded)
			if err != nil || idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("pointer %q out of range", pointer)
			}
			current = typed[idx]
		default:
			return nil, fmt.Errorf("pointer %q invalid", pointer)
		}
	}
	return current, nil
}

func indexAnchors(node any, pointer string, anchors map[string]string) error {
	switch typed := node.(type) {
	case map[string]any:
		if raw, ok := typed["$anchor"]; ok {
			name, ok := raw.(string)
			name = strings.TrimSpace(name)
			if ok && name != "" {
				if _, exists := anchors[name]; exists {
					return fmt.Errorf("jsonschema refs: duplicate anchor %q", name)
				}
				anchors[name] = pointer
			}
		}
		for _, key := range sortedKeys(typed) {
			if err := indexAnchors(typed[key], joinPath(pointer, key), anchors); err != nil {
				return err
			}
		}
	case []any:
		for idx, value := range typed {
			if err := indexAnchors(value, joinPath(pointer, strconv.Itoa(idx)), anchors); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func joinPath(path string, segments ...string) string {
	if path == "" {
		path = "#"
	}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = path + "/" + escapeJSONPointer(segment)
	}
	return path
}

func escapeJSONPointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

type resolveState struct {
	stack   []string
	inStack map[string]struct{}
}

func (s *resolveState) push(ref string) {
	s.stack = append(s.stack, ref)
	if s.inStack == nil {
		s.inStack = make(map[string]struct{})
	}
	s.inStack[ref] = struct{}{}
}

func (s *resolveState) contains(ref string) bool {
	_, ok := s.inStack[ref]
	return ok
}
