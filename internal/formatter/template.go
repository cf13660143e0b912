// Package formatter renders one-line inbox summaries from templates with
// {{variable}} placeholders, for shell prompts and status bars.
package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\{\{([a-z0-9-]+)\}\}`)

// Parse returns the variables used by template, without duplicates, in
// order of first use.
func Parse(template string) []string {
	seen := make(map[string]bool)
	var variables []string
	for _, match := range variablePattern.FindAllStringSubmatch(template, -1) {
		if name := match[1]; !seen[name] {
			seen[name] = true
			variables = append(variables, name)
		}
	}
	return variables
}

// Validate checks delimiters and that every variable is known.
func Validate(template string) error {
	open, closing := strings.Count(template, "{{"), strings.Count(template, "}}")
	if open != closing {
		return fmt.Errorf("mismatched variable delimiters: %d opens, %d closes", open, closing)
	}
	for _, name := range Parse(template) {
		if !known(name) {
			return fmt.Errorf("unknown variable: %s (available: %s)", name, strings.Join(Variables(), ", "))
		}
	}
	return nil
}

// Render substitutes every variable in template from s.
func Render(template string, s Summary) (string, error) {
	if err := Validate(template); err != nil {
		return "", err
	}
	return variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		value, _ := s.Resolve(variablePattern.FindStringSubmatch(match)[1])
		return value
	}), nil
}
