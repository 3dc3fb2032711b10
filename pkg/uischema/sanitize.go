package uischema

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-psurgen/pkg/schema"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// ErrMarkup reports display text that carries markup. Renderers insert
// titles, headers and labels verbatim into DOCX/PDF/web output.
var ErrMarkup = errors.New("uischema: text must not contain markup")

// PlainText returns an error wrapping ErrMarkup when value changes under the
// strict sanitizer, i.e. when it contains tags, comments or entities.
func PlainText(label, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	cleaned := html.UnescapeString(textSanitizer().Sanitize(value))
	if cleaned != value {
		return fmt.Errorf("%w: %s %q", ErrMarkup, label, value)
	}
	return nil
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// CheckSchemaText polices the titles, descriptions and UI labels/help texts
// declared inside a schema tree.
func CheckSchemaText(root *schema.Schema) error {
	var errs []error
	_ = schema.Walk(root, func(pointer string, node *schema.Schema) error {
		texts := []struct{ label, value string }{
			{"title", node.Title},
			{"description", node.Description},
		}
		if node.UI != nil {
			texts = append(texts,
				struct{ label, value string }{"ui.label", node.UI.Label},
				struct{ label, value string }{"ui.help", node.UI.Help},
			)
		}
		for _, text := range texts {
			if err := PlainText(text.label, text.value); err != nil {
				errs = append(errs, fmt.Errorf("%w (%s)", err, pointer))
			}
		}
		return nil
	})
	return errors.Join(errs...)
}
