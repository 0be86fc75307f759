// Package renderer turns accounts and loan schedules into markdown documents,
// and markdown into HTML.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

// templates holds the markdown templates, by file name.
var templates, _ = fs.Sub(templateFS, "templates")

// RenderAccount renders the card of a single account.
func RenderAccount(a *Account) string {
	return renderTemplate("account", "account.md", nil, a)
}

// RenderAccounts renders the table of all accounts.
func RenderAccounts(a *Accounts) string {
	return renderTemplate("accounts", "accounts.md", nil, a)
}

// RenderSchedule renders a loan summary followed by its repayment table.
func RenderSchedule(s *Schedule) string {
	partials := map[string]string{
		"schedule_summary": "schedule_summary.md",
		"schedule_table":   "schedule_table.md",
	}
	return renderTemplate("schedule", "schedule.md", partials, s)
}

// RenderScheduleTable renders the repayment table alone.
func RenderScheduleTable(s *Schedule) string {
	return renderTemplate("schedule_table", "schedule_table.md", nil, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
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
