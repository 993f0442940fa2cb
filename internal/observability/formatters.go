// Package observability provides formatted output for the analyze command.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/redflag/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed summaries for terminal output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content.
// Long lines are wrapped at word boundaries.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		for _, part := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(part, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// wrap splits line into chunks of at most width runes, breaking on spaces
// where possible and keeping the line's indentation on continuations.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	if len(indent) > width/2 {
		indent = ""
	}

	var out []string
	cur := ""
	for _, word := range strings.Fields(line) {
		for utf8.RuneCountInString(word) > width-len(indent) {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			r := []rune(word)
			out = append(out, indent+string(r[:width-len(indent)]))
			word = string(r[width-len(indent):])
		}
		switch {
		case cur == "":
			cur = indent + word
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(word) <= width:
			cur += " " + word
		default:
			out = append(out, cur)
			if utf8.RuneCountInString(word)+len(indent)+2 <= width {
				cur = indent + "  " + word
			} else {
				cur = indent + word
			}
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

// PrintProfile outputs the scraped profile metadata.
func (p *Printer) PrintProfile(profile *types.ProfileMetadata) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Followers: %d\n", profile.Followers))
	sb.WriteString(fmt.Sprintf("Following: %d\n", profile.Following))
	sb.WriteString(fmt.Sprintf("Posts:     %d\n", profile.Posts))
	sb.WriteString(fmt.Sprintf("Bio:       %s\n", profile.Bio))

	if len(profile.Captions) > 0 {
		sb.WriteString("\nRecent captions:\n")
		for i, c := range profile.Captions {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Captions)-maxItemsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", strings.ReplaceAll(c, "\n", " ")))
		}
	}

	title := "PROFILE @" + profile.Username
	if profile.Placeholder {
		title += " (UNAVAILABLE)"
	}
	p.printBox(title, sb.String())
}

// PrintAnalysis outputs the verdict, flags and opener for one analysis.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	p.PrintProfile(&result.Profile)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Reasoning: %s\n", result.Reasoning))

	sb.WriteString("\nRed flags:\n")
	for _, f := range result.RedFlags {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", f))
	}

	sb.WriteString("\nGreen flags:\n")
	for _, f := range result.GreenFlags {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", f))
	}

	sb.WriteString(fmt.Sprintf("\nOpener: %s\n", result.MessageOpener))

	p.printBox(fmt.Sprintf("VERDICT: %s FLAG", strings.ToUpper(string(result.Flag))), sb.String())
}
