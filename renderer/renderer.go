// Package renderer turns finance reports into markdown.
//
// Each report has a view type, built from the finance types by a New
// function, and an embedded text/template assembled from partials.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderBalance renders the balance history of an account.
func RenderBalance(b *Balance) string {
	partials := map[string]string{
		"balance_title": "balance_title.md",
		"balance_lines": "balance_lines.md",
	}
	return renderTemplate("balance", "balance.md", partials, b)
}

// RenderHistory renders the evolution of a balance.
func RenderHistory(h *History) string {
	return renderTemplate("history", "history.md", nil, h)
}

// RenderStats renders the overview of all accounts.
func RenderStats(s *Stats) string {
	partials := map[string]string{
		"stats_summary":  "stats_summary.md",
		"stats_accounts": "stats_accounts.md",
	}
	return renderTemplate("stats", "stats.md", partials, s)
}

// RenderChart renders the income and expenses buckets of an account.
func RenderChart(c *Chart) string {
	return renderTemplate("chart", "chart.md", nil, c)
}

// RenderDivergence renders the transactions counted differently by the two dates.
func RenderDivergence(d *Divergence) string {
	partials := map[string]string{
		"divergence_summary":      "divergence_summary.md",
		"divergence_transactions": "divergence_transactions.md",
	}
	return renderTemplate("divergence", "divergence.md", partials, d)
}

// RenderProjection renders the projected balance of an account.
func RenderProjection(p *Projection) string {
	partials := map[string]string{
		"projection_summary": "projection_summary.md",
		"projection_points":  "projection_points.md",
	}
	return renderTemplate("projection", "projection.md", partials, p)
}

// RenderOccurrences renders the occurrence dates of recurring transactions.
func RenderOccurrences(o *Occurrences) string {
	return renderTemplate("occurrences", "occurrences.md", nil, o)
}

// RenderCalendar renders a month of recurring transactions.
func RenderCalendar(c *Calendar) string {
	return renderTemplate("calendar", "calendar.md", nil, c)
}

// RenderDue renders the overdue and upcoming recurring transactions.
func RenderDue(d *Due) string {
	return renderTemplate("due", "due.md", nil, d)
}

// RenderBudgets renders the budget consumption of the categories.
func RenderBudgets(b *Budgets) string {
	return renderTemplate("budget", "budget.md", nil, b)
}

// RenderLoan renders a loan and its amortization table.
func RenderLoan(l *Loan) string {
	partials := map[string]string{
		"loan_summary":  "loan_summary.md",
		"loan_schedule": "loan_schedule.md",
	}
	return renderTemplate("loan", "loan.md", partials, l)
}

// RenderInstallments renders the installment plans.
func RenderInstallments(i *Installments) string {
	return renderTemplate("installments", "installments.md", nil, i)
}

// renderTemplate renders a main template that depends on several partials.
// Failures are rendered in place of the report.
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
