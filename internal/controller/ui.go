// Package controller provides output renderers for scan reports.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "dupescan.dev/pkg/dupescan/internal/model"
)

// UI defines the interface for displaying a scan report. Implementations can
// use different output methods (plain text, pager TUI).
type UI interface {
	DisplayReport(ctx context.Context, report m.Report) error
}

// NewUI selects the report renderer: a pager when stdout is an interactive
// terminal, plain text otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the writer is attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
