package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "dupescan.dev/pkg/dupescan/internal/model"
)

var (
	groupHeader = color.New(color.Bold)
	warnColor   = color.New(color.FgYellow)
)

// SimpleUI renders a report as plain text using the cobra command's output
// streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport prints one block per duplicate group followed by a summary
// table. Diagnostics go to stderr so piped output stays clean.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.displayDiagnostics(report.Diagnostics)

	if len(report.Groups) == 0 {
		s.cmd.Println("No duplicate files found.")
		return nil
	}

	out := s.cmd.OutOrStdout()

	for i, group := range report.Groups {
		if _, err := groupHeader.Fprintf(out, "\nGroup %d: %d files of %s\n",
			i+1, len(group.Files), humanSize(group.Size)); err != nil {
			return err
		}

		for _, file := range group.Files {
			s.cmd.Printf("  %s\n", file.Path)
		}
	}

	s.cmd.Printf("\n%s", renderSummaryTable(report))

	return nil
}

func (s *SimpleUI) displayDiagnostics(diagnostics []m.Diagnostic) {
	errOut := s.cmd.ErrOrStderr()
	for _, diag := range diagnostics {
		_, _ = warnColor.Fprintf(errOut, "warning: skipped %s: %s\n", diag.Path, diag.Err)
	}
}

// renderSummaryTable builds the per-group summary with totals.
func renderSummaryTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Group", "Files", "Size", "Wasted"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	var totalFiles int
	var totalWasted int64

	for i, group := range report.Groups {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", len(group.Files)),
			humanSize(group.Size),
			humanSize(group.WastedBytes()),
		})

		totalFiles += len(group.Files)
		totalWasted += group.WastedBytes()
	}

	table.SetFooter([]string{
		"total",
		fmt.Sprintf("%d", totalFiles),
		"",
		humanSize(totalWasted),
	})
	table.Render()

	return tableBuffer.String()
}

// humanSize formats a byte count with 1024-based units.
func humanSize(size int64) string {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case size >= gb:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
