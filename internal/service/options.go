package service

import (
	"strings"

	"github.com/chukwudobemicah/limer-properties-sub000/internal/model"
)

// BuildOptions derives deduplicated {value, label} pairs from raw reference
// entities, preserving first-occurrence order.
//
// The dedup key is the slug when present, otherwise the id. Entries whose
// trimmed, case-insensitive label was already emitted are also dropped even
// when their key differs; the content store occasionally holds
// near-duplicate reference entities and only the first should surface.
// Blank labels fall back to the value itself.
func BuildOptions(refs []model.Reference) []model.Option {
	seenKeys := make(map[string]struct{}, len(refs))
	seenLabels := make(map[string]struct{}, len(refs))
	out := make([]model.Option, 0, len(refs))

	for _, ref := range refs {
		value := ref.Slug
		if value == "" {
			value = ref.ID
		}
		if value == "" {
			continue
		}
		if _, dup := seenKeys[value]; dup {
			continue
		}

		label := strings.TrimSpace(ref.Label)
		if label == "" {
			label = value
		}
		labelKey := strings.ToLower(label)
		if _, dup := seenLabels[labelKey]; dup {
			continue
		}

		seenKeys[value] = struct{}{}
		seenLabels[labelKey] = struct{}{}
		out = append(out, model.Option{Value: value, Label: label})
	}
	return out
}
