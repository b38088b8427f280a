package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/luillyfe/resume-insights/internal/types"
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidate outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintCandidate(candidate *types.Candidate) {
	if candidate == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", candidate.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", candidate.Email))
	if candidate.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", candidate.Location))
	}

	if len(candidate.Skills) > 0 {
		sb.WriteString("\nTop skills:\n")

		details := make([]types.SkillDetail, 0, len(candidate.Skills))
		for _, detail := range candidate.Skills {
			details = append(details, detail)
		}
		sort.Slice(details, func(i, j int) bool {
			pi, pj := 0.0, 0.0
			if details[i].Proficiency != nil {
				pi = *details[i].Proficiency
			}
			if details[j].Proficiency != nil {
				pj = *details[j].Proficiency
			}
			if pi != pj {
				return pi > pj
			}
			return details[i].SkillName < details[j].SkillName
		})

		count := min(len(details), maxItemsToShow)
		for i := 0; i < count; i++ {
			detail := details[i]
			sb.WriteString(fmt.Sprintf("  • %s", detail.SkillName))
			if detail.Proficiency != nil {
				sb.WriteString(fmt.Sprintf(" (%.1f)", *detail.Proficiency))
			}
			if detail.YearsExperience != nil {
				sb.WriteString(fmt.Sprintf(" %.1fy", *detail.YearsExperience))
			}
			sb.WriteString("\n")
		}
		if len(details) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(details)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobMatch outputs the per-skill relevance assessment for a job.
func (p *Printer) PrintJobMatch(match *types.JobSkill) {
	if match == nil || len(match.Skills) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Position: %s\n\n", match.JobName))

	names := make([]string, 0, len(match.Skills))
	for name := range match.Skills {
		names = append(names, name)
	}
	sort.Strings(names)

	count := min(len(names), maxItemsToShow)
	for i := 0; i < count; i++ {
		assessment := match.Skills[names[i]]
		sb.WriteString(fmt.Sprintf("• %s", names[i]))
		if assessment.Relevance != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", assessment.Relevance))
		}
		sb.WriteString("\n")
		if assessment.Reasoning != "" {
			reasoning := assessment.Reasoning
			if len(reasoning) > 45 {
				reasoning = reasoning[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", reasoning))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more skills", len(names)-maxItemsToShow))
	}

	p.printBox("JOB MATCH", sb.String())
}
