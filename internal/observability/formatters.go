// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/application-tailor/internal/assembly"
	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs the target job and the keywords found in it.
func (p *Printer) PrintJob(job *types.Job, kw keywords.Set) {
	if job == nil {
		p.printBox("TARGET JOB", "(none selected)")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
	if job.ContactPerson != "" {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", job.ContactPerson))
	}
	sb.WriteString("\n")

	terms := kw.Sorted()
	if len(terms) == 0 {
		sb.WriteString("Keywords: none\n")
	} else {
		sb.WriteString(fmt.Sprintf("Keywords (%d):\n", len(terms)))
		count := min(len(terms), maxItemsToShow*2)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", terms[i]))
		}
		if len(terms) > count {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(terms)-count))
		}
	}

	p.printBox("TARGET JOB", sb.String())
}

// PrintRankedSkills outputs the ranked skill list, marking keyword matches.
func (p *Printer) PrintRankedSkills(skills []types.Skill, kw keywords.Set) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range skills {
		mark := " "
		if kw.Contains(s.Name) {
			mark = "✓"
		}
		level := s.Level
		if level == "" {
			level = "-"
		}
		sb.WriteString(fmt.Sprintf("%2d. %s %-28s %s\n", i+1, mark, s.Name, level))
	}

	p.printBox("RANKED SKILLS", sb.String())
}

// PrintReport outputs per-field tailoring outcomes and parse diagnostics.
func (p *Printer) PrintReport(report *assembly.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Years of experience: %d\n", report.YearsOfExperience))
	if report.SummarySynthesized {
		sb.WriteString("Summary: synthesized\n")
	}

	if len(report.Fields) > 0 {
		counts := make(map[assembly.Outcome]int)
		for _, f := range report.Fields {
			counts[f.Outcome]++
		}
		sb.WriteString(fmt.Sprintf("\nFields: %d tailored, %d empty, %d kept (empty result), %d kept (error)\n",
			counts[assembly.OutcomeTailored], counts[assembly.OutcomeSkippedEmpty],
			counts[assembly.OutcomeFallbackEmpty], counts[assembly.OutcomeFallbackError]))
		for _, f := range report.Fields {
			if f.Outcome != assembly.OutcomeFallbackError {
				continue
			}
			sb.WriteString(fmt.Sprintf("  ⚠ %s: %s\n", f.Path, f.Error))
		}
	}

	if len(report.MissingSections) > 0 {
		sb.WriteString(fmt.Sprintf("\nMissing sections (%d):\n", len(report.MissingSections)))
		for _, tag := range report.MissingSections {
			sb.WriteString(fmt.Sprintf("  • %s\n", tag))
		}
	}

	p.printBox("TAILORING REPORT", sb.String())
}

// PrintLayout outputs page count and section order of a laid out document.
func (p *Printer) PrintLayout(doc *layout.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s / %s\n", doc.Locale, doc.Style))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", doc.PageCount()))
	if order := doc.SectionOrder(); len(order) > 0 {
		sb.WriteString(fmt.Sprintf("Sections: %s\n", strings.Join(order, " → ")))
	}

	p.printBox("LAYOUT", sb.String())
}
