// Package renderer renders run reports, watchlists, ledgers and the summary
// as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderReport renders the report of a run.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title":      "report_title.md",
		"report_counts":     "report_counts.md",
		"report_watchlists": "watchlists.md",
		"report_warnings":   "report_warnings.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderWatchlists renders scan records grouped by watchlist.
func RenderWatchlists(w *Watchlists) string {
	partials := map[string]string{
		"report_watchlists": "watchlists.md",
	}
	return renderTemplate("watchlists", "watchlists_page.md", partials, w)
}

// RenderLedger renders the positions of a ledger.
func RenderLedger(l *Ledger) string {
	partials := map[string]string{
		"ledger_positions": "ledger_positions.md",
	}
	return renderTemplate("ledger", "ledger.md", partials, l)
}

// RenderSummary renders the book summary.
func RenderSummary(s *Summary) string {
	return renderTemplate("summary", "summary.md", nil, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
