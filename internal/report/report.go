package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nanopore-tools/h5audit/internal/hier"
	"github.com/nanopore-tools/h5audit/internal/template"
)

const reportTemplateName = "report"

// DefaultTemplate prints each section title in upper case followed by its
// tree, with a blank line between sections.
const DefaultTemplate = `{{range $i, $s := .Sections}}{{if $i}}{{"\n"}}{{end}}{{upper $s.Title}}{{"\n"}}{{$s.Body}}{{end}}`

// Options controls report rendering.
type Options struct {
	ShowValues   bool   // Suffix constant leaves with their value
	Indent       string // Per-level indentation; DefaultIndent when empty
	TemplatePath string // Custom report template; DefaultTemplate when empty
}

// Section is one rendered class of leaves.
type Section struct {
	Title string // "Constant" or "Variable"
	Body  string // Rendered tree, one line per entry
}

// Data is passed to the report template.
type Data struct {
	Sections []Section
}

// Build renders the tree once per class.
func Build(tree *hier.Tree, cls *Classification, opts Options) (*Data, error) {
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}

	passes := []struct {
		title  string
		filter Filter
	}{
		{"Constant", cls.ConstantFilter(opts.ShowValues)},
		{"Variable", cls.VariableFilter()},
	}

	data := &Data{}
	for _, p := range passes {
		var body strings.Builder
		if err := RenderTree(&body, tree, p.filter, indent); err != nil {
			return nil, fmt.Errorf("rendering %s section: %w", strings.ToLower(p.title), err)
		}
		data.Sections = append(data.Sections, Section{Title: p.title, Body: body.String()})
	}
	return data, nil
}

// Write renders the full report into w.
func Write(w io.Writer, tree *hier.Tree, cls *Classification, opts Options) error {
	data, err := Build(tree, cls, opts)
	if err != nil {
		return err
	}

	engine := template.New()
	if opts.TemplatePath != "" {
		err = engine.LoadFile(reportTemplateName, opts.TemplatePath)
	} else {
		err = engine.LoadString(reportTemplateName, DefaultTemplate)
	}
	if err != nil {
		return fmt.Errorf("loading report template: %w", err)
	}

	out, err := engine.Render(reportTemplateName, data)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
