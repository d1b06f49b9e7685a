package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "dupescan.dev/pkg/dupescan/internal/model"
)

// TUI renders a report through a scrollable pager when it does not fit the
// terminal, falling back to a plain dump when it does.
type TUI struct {
	output io.Writer
	errOut io.Writer
}

// NewTUI creates a new TUI writing to the given streams.
func NewTUI(output, errOut io.Writer) *TUI {
	return &TUI{output: output, errOut: errOut}
}

// DisplayReport shows the duplicate groups, paginating interactively when
// the content exceeds the terminal height.
func (p *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, diag := range report.Diagnostics {
		_, _ = warnColor.Fprintf(p.errOut, "warning: skipped %s: %s\n", diag.Path, diag.Err)
	}

	model := newReportModel(report)

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If the report is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// reportModel is the Bubble Tea model for paging through duplicate groups.
type reportModel struct {
	report   m.Report
	lines    []string
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func newReportModel(report m.Report) reportModel {
	return reportModel{
		report: report,
		lines:  buildReportLines(report),
	}
}

func buildReportLines(report m.Report) []string {
	if len(report.Groups) == 0 {
		return []string{"  No duplicate files found."}
	}

	var lines []string

	for i, group := range report.Groups {
		lines = append(lines, fmt.Sprintf("  Group %d: %d files of %s",
			i+1, len(group.Files), humanSize(group.Size)))

		for _, file := range group.Files {
			lines = append(lines, fmt.Sprintf("    %s", file.Path))
		}
	}

	return lines
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.height = msg.Height
		rm.width = msg.Width

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

//nolint:cyclop // Key handling requires multiple cases for UI navigation
func (rm reportModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		rm.quitting = true
		return rm, tea.Quit

	case "down", "j":
		rm.offset = clampOffset(rm.offset+1, rm.maxOffset())
		return rm, nil

	case "up", "k":
		rm.offset = clampOffset(rm.offset-1, rm.maxOffset())
		return rm, nil

	case "g", "home":
		rm.offset = 0
		return rm, nil

	case "G", "end":
		rm.offset = rm.maxOffset()
		return rm, nil

	case "d", "pgdown":
		rm.offset = clampOffset(rm.offset+rm.itemsPerPage(), rm.maxOffset())
		return rm, nil

	case "u", "pgup":
		rm.offset = clampOffset(rm.offset-rm.itemsPerPage(), rm.maxOffset())
		return rm, nil
	}

	return rm, nil
}

func clampOffset(offset, max int) int {
	if offset < 0 {
		return 0
	}

	if offset > max {
		return max
	}

	return offset
}

// itemsPerPage calculates how many report lines fit on screen.
func (rm reportModel) itemsPerPage() int {
	if rm.height == 0 {
		return 10 // Default
	}
	// Reserve space for:
	// - Header: 4 lines (box + empty)
	// - Summary: 2 lines (empty + totals)
	// - Footer: 3 lines (empty + position + help)
	reserved := 9

	available := rm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

func (rm reportModel) maxOffset() int {
	available := rm.itemsPerPage()
	if len(rm.lines) <= available {
		return 0
	}

	return len(rm.lines) - available
}

func (rm reportModel) needsPagination() bool {
	if rm.height == 0 {
		return false
	}

	return len(rm.lines) > rm.itemsPerPage()
}

func (rm reportModel) View() string {
	var b strings.Builder

	rm.renderHeader(&b)

	visible := rm.visibleLines()
	for _, line := range visible {
		fmt.Fprintf(&b, "%s\n", line)
	}

	rm.renderSummary(&b)
	rm.renderFooter(&b)

	return b.String()
}

func (rm reportModel) visibleLines() []string {
	if !rm.needsPagination() {
		return rm.lines
	}

	start := clampOffset(rm.offset, rm.maxOffset())

	end := start + rm.itemsPerPage()
	if end > len(rm.lines) {
		end = len(rm.lines)
	}

	return rm.lines[start:end]
}

func (rm reportModel) renderHeader(b *strings.Builder) {
	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║                  dupescan - Duplicate Files                    ║\n")
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n\n")
}

func (rm reportModel) renderSummary(b *strings.Builder) {
	var totalFiles int
	var totalWasted int64

	for _, group := range rm.report.Groups {
		totalFiles += len(group.Files)
		totalWasted += group.WastedBytes()
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  Scanned: %d | Groups: %d | Duplicates: %d | Wasted: %s\n",
		rm.report.Scanned, len(rm.report.Groups), totalFiles, humanSize(totalWasted))
}

func (rm reportModel) renderFooter(b *strings.Builder) {
	if !rm.needsPagination() {
		return
	}

	available := rm.itemsPerPage()

	start := rm.offset + 1

	end := rm.offset + available
	if end > len(rm.lines) {
		end = len(rm.lines)
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "  Lines %d-%d of %d\n", start, end, len(rm.lines))
	b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
}
