package pricing

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

// Formatter formats cost estimates for terminal display.
type Formatter struct{}

// NewFormatter creates a new formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format returns a boxed, line-item view of the estimate.
func (f *Formatter) Format(e *domain.CostEstimate) string {
	var sb strings.Builder

	width := 61

	sb.WriteString(boxTop(width))
	sb.WriteString(boxLine("Azure Cost Estimate", width))
	sb.WriteString(boxLine(fmt.Sprintf("Resource: %s", e.ResourceType), width))
	sb.WriteString(boxSep(width))

	sb.WriteString(boxEmpty(width))
	for _, item := range e.Breakdown {
		sb.WriteString(boxLine(fmt.Sprintf("%-26s %8.2f/mo", item.Component, item.MonthlyCost), width))
		if item.Details != "" {
			sb.WriteString(boxLine(fmt.Sprintf("  %s", item.Details), width))
		}
	}

	sb.WriteString(boxDash(width))
	sb.WriteString(boxLine(fmt.Sprintf("%-26s %8.2f/mo", "Total", e.MonthlyTotal), width))
	sb.WriteString(boxLine(fmt.Sprintf("Annual estimate: %.2f", e.MonthlyTotal*12), width))
	sb.WriteString(boxEmpty(width))
	sb.WriteString(boxBottom(width))

	fmt.Fprintf(&sb, "\n  Approximate retail prices (%s)\n", e.Currency)
	if e.Disclaimer != "" {
		fmt.Fprintf(&sb, "  %s\n", e.Disclaimer)
	}

	return sb.String()
}

// FormatCompact returns a single-line cost summary.
func (f *Formatter) FormatCompact(e *domain.CostEstimate) string {
	return fmt.Sprintf("%s: %.2f %s/mo (%d components)",
		e.ResourceType, e.MonthlyTotal, e.Currency, len(e.Breakdown))
}

// Helper functions for box drawing

func boxTop(width int) string {
	return fmt.Sprintf("┌%s┐\n", strings.Repeat("─", width-2))
}

func boxBottom(width int) string {
	return fmt.Sprintf("└%s┘\n", strings.Repeat("─", width-2))
}

func boxSep(width int) string {
	return fmt.Sprintf("├%s┤\n", strings.Repeat("─", width-2))
}

func boxDash(width int) string {
	return fmt.Sprintf("│ %s │\n", strings.Repeat("─", width-4))
}

func boxEmpty(width int) string {
	return fmt.Sprintf("│%s│\n", strings.Repeat(" ", width-2))
}

func boxLine(text string, width int) string {
	inner := width - 4
	if len(text) > inner {
		text = text[:inner]
	}
	return fmt.Sprintf("│ %-*s │\n", inner, text)
}
