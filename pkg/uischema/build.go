package uischema

import (
	"errors"
	"fmt"
)

// UISchema assembles the UI schema block. The section order is keys, the
// builder's section key list; titles and field hints come from the
// presentation document and must cover exactly the same keys.
func (p Presentation) UISchema(keys []string) (UISchema, error) {
	configs := make(map[string]SectionConfig, len(p.UI.Sections))
	var errs []error
	for _, cfg := range p.UI.Sections {
		if _, dup := configs[cfg.Key]; dup {
			errs = append(errs, fmt.Errorf("uischema: section %q configured twice", cfg.Key))
			continue
		}
		configs[cfg.Key] = cfg
	}

	out := UISchema{
		GlobalOptions: p.UI.GlobalOptions,
		Sections: Sections{
			Order:   append([]string(nil), keys...),
			Entries: make([]SectionUI, 0, len(keys)),
		},
	}
	used := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		cfg, ok := configs[key]
		if !ok {
			errs = append(errs, fmt.Errorf("uischema: section %q has no title", key))
			continue
		}
		used[key] = struct{}{}
		entry := SectionUI{Key: key, Title: cfg.Title}
		if len(cfg.Fields) > 0 {
			entry.Fields = append([]FieldUI(nil), cfg.Fields...)
		}
		out.Sections.Entries = append(out.Sections.Entries, entry)
	}
	for _, cfg := range p.UI.Sections {
		if _, ok := used[cfg.Key]; !ok {
			errs = append(errs, fmt.Errorf("uischema: section %q is not a schema section", cfg.Key))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return UISchema{}, err
	}
	return out, nil
}
