// Package hints derives lightweight entity hints from extracted resume text.
// The hints bias the downstream resolver toward correct field attribution and
// are never required: when the NER model is unavailable the hinter degrades to
// an empty hint set rather than failing the request.
package hints

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/rs/zerolog"
)

const (
	// maxPerCategory caps each category's hint count to bound prompt size.
	maxPerCategory = 15
	// textWindow limits NER to the head of the document. Resumes rarely
	// carry header information past this point.
	textWindow = 10000
)

// EntityHints holds the categorized candidate strings. Each slice contains
// distinct values in first-seen order, at most maxPerCategory entries.
type EntityHints struct {
	Organizations []string
	Locations     []string
	People        []string
}

// Empty returns a hint set with no entries in any category.
func Empty() EntityHints {
	return EntityHints{
		Organizations: []string{},
		Locations:     []string{},
		People:        []string{},
	}
}

// Hinter extracts entity hints using a process-wide NER model. The model is
// loaded once at startup; if loading fails the hinter stays usable and every
// call returns an empty hint set.
type Hinter struct {
	available bool
	logger    zerolog.Logger
}

// NewHinter probes the NER model once and records whether it is usable.
func NewHinter(logger zerolog.Logger) *Hinter {
	h := &Hinter{logger: logger}

	// Building a document forces the embedded model to load; an error here
	// means NER is unavailable for the process lifetime.
	if _, err := prose.NewDocument("probe"); err != nil {
		logger.Warn().Err(err).Msg("NER model unavailable, entity hints disabled")
		return h
	}

	h.available = true
	return h
}

// Available reports whether the underlying NER model loaded.
func (h *Hinter) Available() bool {
	return h.available
}

// Hint extracts organization, location, and person candidates from the first
// textWindow characters of text. It never fails: any model error yields an
// empty hint set.
func (h *Hinter) Hint(text string) EntityHints {
	if !h.available {
		return Empty()
	}

	if len(text) > textWindow {
		text = text[:textWindow]
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		h.logger.Warn().Err(err).Msg("entity detection failed, continuing without hints")
		return Empty()
	}

	hints := Empty()
	seen := map[string]map[string]bool{
		"organization": {},
		"location":     {},
		"person":       {},
	}

	for _, ent := range doc.Entities() {
		category, ok := categoryForLabel(ent.Label)
		if !ok {
			continue
		}

		value := normalizeEntity(ent.Text)
		if value == "" || seen[category][value] {
			continue
		}
		seen[category][value] = true

		switch category {
		case "organization":
			hints.Organizations = appendCapped(hints.Organizations, value)
		case "location":
			hints.Locations = appendCapped(hints.Locations, value)
		case "person":
			hints.People = appendCapped(hints.People, value)
		}
	}

	return hints
}

// categoryForLabel maps the model's entity labels onto the three hint
// categories. All other labels are discarded.
func categoryForLabel(label string) (string, bool) {
	switch label {
	case "ORG", "ORGANIZATION":
		return "organization", true
	case "GPE", "LOC", "LOCATION":
		return "location", true
	case "PERSON":
		return "person", true
	default:
		return "", false
	}
}

// normalizeEntity flattens embedded newlines and trims surrounding space.
func normalizeEntity(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func appendCapped(values []string, v string) []string {
	if len(values) >= maxPerCategory {
		return values
	}
	return append(values, v)
}
