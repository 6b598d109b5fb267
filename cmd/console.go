package cmd

import (
	"fmt"
	"io"
	"strings"

	"stock-reconciler/core/reconcile"

	"github.com/fatih/color"
)

var (
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	issueColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
	headingColor = color.New(color.FgCyan, color.Bold)
)

// consoleSink prints a run to a terminal. It implements reconcile.Sink and is
// also fed by the watch command from decoded stream events.
type consoleSink struct {
	out     io.Writer
	quiet   bool // hide ok results
	results int
	errs    []string
}

var _ reconcile.Sink = (*consoleSink)(nil)

func newConsoleSink(out io.Writer, quiet bool) *consoleSink {
	return &consoleSink{out: out, quiet: quiet}
}

func severityColor(s reconcile.Severity) *color.Color {
	switch s {
	case reconcile.SeverityIssue:
		return issueColor
	case reconcile.SeverityWarning:
		return warnColor
	default:
		return okColor
	}
}

func (s *consoleSink) Progress(message string, current, total int) error {
	if total > 0 {
		dimColor.Fprintf(s.out, "[%d/%d] %s\n", current, total, message)
		return nil
	}
	dimColor.Fprintln(s.out, message)
	return nil
}

func (s *consoleSink) Result(r reconcile.AnalysisResult) error {
	s.results++
	if s.quiet && r.Severity == reconcile.SeverityOK {
		return nil
	}
	c := severityColor(r.Severity)
	c.Fprintf(s.out, "%-8s", strings.ToUpper(string(r.Severity)))
	fmt.Fprintf(s.out, " %s  %s\n", r.Key, r.Name)
	fmt.Fprintf(s.out, "         %s (catalog %d, primary %d", r.Category, r.CatalogQuantity, r.PrimaryOnHand)
	if r.Secondary != nil {
		fmt.Fprintf(s.out, ", secondary %d/%d", r.Secondary.OnHand, r.Secondary.InOrder)
	}
	fmt.Fprintln(s.out, ")")
	for _, note := range r.Notes {
		dimColor.Fprintf(s.out, "         - %s\n", note)
	}
	return nil
}

func (s *consoleSink) Summary(sum reconcile.Summary) error {
	headingColor.Fprintln(s.out, "Summary")
	fmt.Fprintf(s.out, "  feed items:           %d\n", sum.TotalFeedItems)
	fmt.Fprintf(s.out, "  not sellable:         %d\n", sum.NotSellableCount)
	fmt.Fprintf(s.out, "  secondary records:    %d\n", sum.SecondaryCount)
	fmt.Fprintf(s.out, "  overlap:              %d\n", sum.OverlapCount)
	fmt.Fprintf(s.out, "  skipped:              %d\n", sum.SkippedCount)
	fmt.Fprintf(s.out, "  positive unallocated: %d\n", sum.PositiveUnallocated)
	return nil
}

func (s *consoleSink) SoftError(message string) error {
	s.errs = append(s.errs, message)
	warnColor.Fprintf(s.out, "error: %s\n", message)
	return nil
}

// complete prints the closing line of a successful run.
func (s *consoleSink) complete(results, total int, errs []string) {
	c := okColor
	if len(errs) > 0 {
		c = warnColor
	}
	c.Fprintf(s.out, "Done: %d results for %d candidates, %d errors\n", results, total, len(errs))
}

// fail prints a fatal error.
func (s *consoleSink) fail(message string) {
	issueColor.Fprintf(s.out, "FAILED: %s\n", message)
}
