// Package observability provides formatted terminal output for scan results.
package observability

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/jonathan/ats-scanner/internal/keywords"
	"github.com/jonathan/ats-scanner/internal/types"
	"github.com/olekukonko/tablewriter"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a category distribution bar
	barWidth = 20
	// categoryLabelWidth pads category names in distribution bars
	categoryLabelWidth = 16
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Printer handles formatted output for the CLI
type Printer struct {
	out      io.Writer
	colorize bool
}

// NewPrinter creates a new Printer that writes to the given writer. Colors
// follow fatih/color's terminal detection.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, colorize: !color.NoColor}
}

// WithColor forces colored output on or off.
func (p *Printer) WithColor(enabled bool) *Printer {
	p.colorize = enabled
	return p
}

func (p *Printer) paint(text string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if p.colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func (p *Printer) ratingColor(rating types.MatchRating) []color.Attribute {
	switch rating {
	case types.RatingStrong:
		return []color.Attribute{color.FgGreen, color.Bold}
	case types.RatingFair:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgRed, color.Bold}
	}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", padVisible(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", padVisible(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// padVisible pads line to width printable cells, truncating plain lines that
// are too long. Color escapes do not count toward the width.
func padVisible(line string, width int) string {
	visible := utf8.RuneCountInString(ansiEscape.ReplaceAllString(line, ""))
	if visible > width && !ansiEscape.MatchString(line) {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	if visible < width {
		return line + strings.Repeat(" ", width-visible)
	}
	return line
}

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// categoryBars renders one bar per category with a non-zero share, largest
// first.
func categoryBars(categories map[string]int) string {
	names := make([]string, 0, len(categories))
	for name, pct := range categories {
		if pct > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "No category hits"
	}
	sort.Slice(names, func(i, j int) bool {
		if categories[names[i]] != categories[names[j]] {
			return categories[names[i]] > categories[names[j]]
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	for i, name := range names {
		pct := categories[name]
		filled := min(barWidth, (pct*barWidth+50)/100)
		label := name
		if utf8.RuneCountInString(label) > categoryLabelWidth {
			label = string([]rune(label)[:categoryLabelWidth])
		}
		sb.WriteString(fmt.Sprintf("%-*s %s%s %3d%%", categoryLabelWidth, label,
			strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), pct))
		if i < len(names)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// bulletList renders at most limit items, then a count of the rest.
func bulletList(items []string, limit int) string {
	if len(items) == 0 {
		return "  (none)"
	}
	var sb strings.Builder
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s", items[i]))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(items)-limit))
	}
	return sb.String()
}

// PrintExtraction outputs the scores, category distribution and keyword
// frequencies of one extraction.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExtraction(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keywords found:  %d\n", result.Matches))
	sb.WriteString(fmt.Sprintf("Score:           %d\n", result.Score))
	sb.WriteString(fmt.Sprintf("Weighted score:  %d\n\n", result.WeightedScore))
	sb.WriteString("Category distribution:\n")
	sb.WriteString(categoryBars(result.Categories))
	p.printBox("KEYWORD EXTRACTION", sb.String())

	if len(result.Keywords) == 0 {
		return
	}
	fmt.Fprintln(p.out)
	p.PrintFrequencies(result.Frequency)
}

// PrintFrequencies outputs a keyword frequency table, most frequent first.
func (p *Printer) PrintFrequencies(frequency map[string]int) {
	kws := make([]string, 0, len(frequency))
	for kw := range frequency {
		kws = append(kws, kw)
	}
	sort.Slice(kws, func(i, j int) bool {
		if frequency[kws[i]] != frequency[kws[j]] {
			return frequency[kws[i]] > frequency[kws[j]]
		}
		return kws[i] < kws[j]
	})

	table := newTable(p.out, "Keyword", "Count")
	for _, kw := range kws {
		table.Append([]string{kw, fmt.Sprint(frequency[kw])})
	}
	table.Render()
}

// PrintComparison outputs the match score, the job's category distribution,
// and the matched and missing keywords, followed by the copy-ready missing list.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintComparison(comparison *types.ComparisonResult) {
	if comparison == nil {
		return
	}

	total := len(comparison.Matched) + len(comparison.Missing)
	score := p.paint(fmt.Sprintf("%d%% %s match", comparison.MatchPercentage, comparison.Rating),
		p.ratingColor(comparison.Rating)...)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:     %s\n", score))
	sb.WriteString(fmt.Sprintf("Keywords:  %d of %d job keywords found\n", len(comparison.Matched), total))
	if comparison.Job != nil {
		sb.WriteString("\nJob keyword categories:\n")
		sb.WriteString(categoryBars(comparison.Job.Categories))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\nMatched (%d):\n", len(comparison.Matched)))
	sb.WriteString(bulletList(comparison.Matched, maxItemsToShow*2))
	sb.WriteString(fmt.Sprintf("\n\nMissing (%d):\n", len(comparison.Missing)))
	sb.WriteString(bulletList(comparison.Missing, maxItemsToShow*2))
	p.printBox("ATS MATCH", sb.String())

	fmt.Fprintln(p.out)
	p.PrintMissingList(comparison.Missing)
}

// PrintMissingList outputs missing keywords comma-joined on one line so they
// can be pasted into a resume.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMissingList(missing []string) {
	if len(missing) == 0 {
		fmt.Fprintln(p.out, p.paint("✅ No missing keywords", color.FgGreen))
		return
	}
	fmt.Fprintln(p.out, "Missing keywords (copy-ready):")
	fmt.Fprintln(p.out, strings.Join(missing, ", "))
}

// PrintTargets outputs the prioritized keyword targets.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTargets(targets *types.KeywordTargets) {
	if targets == nil || len(targets.Targets) == 0 {
		return
	}

	fmt.Fprintln(p.out, "Add these first:")
	table := newTable(p.out, "Keyword", "Weight", "Job Count", "Categories")
	for _, target := range targets.Targets {
		table.Append([]string{
			target.Keyword,
			fmt.Sprintf("%.2f", target.Weight),
			fmt.Sprint(target.Frequency),
			strings.Join(target.Categories, ", "),
		})
	}
	table.Render()
}

// PrintExplain outputs how each token was resolved. Unmatched tokens are
// skipped unless all is true.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExplain(matches []types.TokenMatch, all bool) {
	table := newTable(p.out, "Token", "Normalized", "Tier", "Keyword", "Categories")
	rows := 0
	for _, m := range matches {
		if m.Tier == types.TierNone && !all {
			continue
		}
		table.Append([]string{m.Token, m.Normalized, string(m.Tier), m.Keyword, strings.Join(m.Categories, ", ")})
		rows++
	}
	if rows == 0 {
		fmt.Fprintln(p.out, "No tokens matched the taxonomy.")
		return
	}
	table.Render()
}

// PrintRanking outputs ranked job descriptions with their notes.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRanking(ranking *types.JobRanking) {
	if ranking == nil || len(ranking.Ranked) == 0 {
		return
	}

	table := newTable(p.out, "#", "Source", "Match", "Rating", "Weighted")
	for i, job := range ranking.Ranked {
		table.Append([]string{
			fmt.Sprint(i + 1),
			job.Source,
			fmt.Sprintf("%d%%", job.MatchPercentage),
			p.paint(string(job.Rating), p.ratingColor(job.Rating)...),
			fmt.Sprint(job.WeightedScore),
		})
	}
	table.Render()

	fmt.Fprintln(p.out)
	for i, job := range ranking.Ranked {
		if job.Notes != "" {
			fmt.Fprintf(p.out, "#%d %s: %s\n", i+1, job.Source, job.Notes)
		}
	}
}

// PrintTaxonomy outputs every category with its weight and keywords.
func (p *Printer) PrintTaxonomy(t *keywords.Taxonomy) {
	if t == nil {
		return
	}

	table := newTable(p.out, "Category", "Weight", "Keywords")
	for _, c := range t.Categories() {
		table.Append([]string{c.Name, fmt.Sprintf("%.2f", t.Weight(c.Name)), strings.Join(c.Keywords, ", ")})
	}
	table.Render()
}
