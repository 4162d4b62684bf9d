package template

import (
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	titleCaser := cases.Title(language.English)
	upperCaser := cases.Upper(language.Und)
	lowerCaser := cases.Lower(language.Und)
	return template.FuncMap{
		// String functions
		"lower":     lowerCaser.String,
		"upper":     upperCaser.String,
		"title":     titleCaser.String,
		"trimSpace": strings.TrimSpace,
		"join":      strings.Join,
		"repeat":    strings.Repeat,

		// Formatting functions
		"indent": indent,
	}
}

// indent adds n spaces of indentation to each non-empty line.
func indent(n int, s string) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
