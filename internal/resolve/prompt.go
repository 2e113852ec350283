package resolve

import (
	"strings"

	"github.com/jonathan/cv-parser/internal/hints"
	"github.com/jonathan/cv-parser/internal/prompts"
)

// noneIdentified is the literal fallback for an empty hint category.
const noneIdentified = "None identified"

// BuildPrompt constructs the extraction instruction: task statement, missing
// field policy, skills policy, labeled entity hints, and the full resume text.
func BuildPrompt(text string, h hints.EntityHints) string {
	template := prompts.MustGet("resolve.json", "extract-candidate-record")
	return prompts.Format(template, map[string]string{
		"Organizations": hintList(h.Organizations),
		"Locations":     hintList(h.Locations),
		"People":        hintList(h.People),
		"ResumeText":    text,
	})
}

// hintList renders one category as a comma-separated list, or the literal
// fallback when the category is empty.
func hintList(values []string) string {
	if len(values) == 0 {
		return noneIdentified
	}
	return strings.Join(values, ", ")
}
