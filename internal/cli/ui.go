package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sankeyflow/pkg/flow"
	"github.com/matzehuels/sankeyflow/pkg/pipeline"
)

// statusOut receives status lines. Documents go to CLI.Out, so status
// output stays on stderr and never mixes into piped JSON.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleTableKey    = lipgloss.NewStyle().Foreground(colorGray).PaddingRight(2)
	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).PaddingRight(2)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+StyleError.Render(msg))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Build Summary
// =============================================================================

// printSummary prints a table describing res followed by its validation
// messages.
func printSummary(res *pipeline.Result) {
	status := styleComputed.Render(iconFresh)
	if res.CacheInfo.BuildHit {
		status = styleCached.Render(iconCached)
	}

	rows := [][]string{
		{"nodes", StyleNumber.Render(strconv.Itoa(res.Stats.NodeCount))},
		{"links", StyleNumber.Render(strconv.Itoa(res.Stats.LinkCount))},
		{"depth", StyleNumber.Render(strconv.Itoa(res.Layers.MaxDepth+1)) + StyleDim.Render(" layers")},
		{"rows", fmt.Sprintf("%s kept, %s dropped",
			StyleNumber.Render(strconv.Itoa(res.Ingest.Kept)),
			StyleNumber.Render(strconv.Itoa(res.Ingest.Dropped())))},
	}
	if res.Layers.HasCycles() {
		rows = append(rows, []string{"cycles", StyleWarning.Render(fmt.Sprintf("%d node(s) at fallback depth", len(res.Layers.Fallback)))})
	}
	rows = append(rows,
		[]string{"result", status},
		[]string{"run", StyleDim.Render(res.RunID)},
	)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("graph", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTableHeader
			case col == 0:
				return styleTableKey
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(statusOut, t.Render())

	printReport(res.Report)
}

// printReport prints validation errors and warnings.
func printReport(r flow.Report) {
	for _, msg := range r.Errors {
		printError("%s", msg)
	}
	for _, msg := range r.Warnings {
		printWarning("%s", msg)
	}
	if r.IsValid && !r.HasWarnings() {
		printSuccess("graph is valid")
	}
}
