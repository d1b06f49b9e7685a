package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	m "dupescan.dev/pkg/dupescan/internal/model"
)

func sampleReport(groups, filesPerGroup int) m.Report {
	report := m.Report{Root: "/data", Scanned: groups * filesPerGroup}

	for g := 0; g < groups; g++ {
		group := m.DuplicateGroup{Size: int64(100 * (g + 1))}
		for f := 0; f < filesPerGroup; f++ {
			group.Files = append(group.Files, m.FileDescriptor{
				Path: m.Path(fmt.Sprintf("/data/g%d/f%d.txt", g, f)),
				Size: group.Size,
			})
		}

		report.Groups = append(report.Groups, group)
	}

	return report
}

func TestBuildReportLines(t *testing.T) {
	lines := buildReportLines(sampleReport(2, 3))

	// One header line plus one line per member, per group.
	if len(lines) != 2*(1+3) {
		t.Fatalf("buildReportLines() returned %d lines, want 8", len(lines))
	}

	if !strings.Contains(lines[0], "Group 1: 3 files") {
		t.Fatalf("first line = %q, want group header", lines[0])
	}

	if !strings.Contains(lines[1], "/data/g0/f0.txt") {
		t.Fatalf("second line = %q, want first member", lines[1])
	}
}

func TestBuildReportLines_Empty(t *testing.T) {
	lines := buildReportLines(m.Report{})

	if len(lines) != 1 || !strings.Contains(lines[0], "No duplicate files found.") {
		t.Fatalf("buildReportLines() = %v, want single no-duplicates line", lines)
	}
}

func TestReportModel_WindowSizeUpdatesDimensions(t *testing.T) {
	model := newReportModel(sampleReport(1, 2))

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	rm, ok := updated.(reportModel)
	if !ok {
		t.Fatalf("Update() returned %T, want reportModel", updated)
	}

	if rm.width != 80 || rm.height != 24 {
		t.Fatalf("dimensions = %dx%d, want 80x24", rm.width, rm.height)
	}
}

func TestReportModel_Paging(t *testing.T) {
	model := newReportModel(sampleReport(10, 3))
	model.height = 13 // itemsPerPage = 4

	if !model.needsPagination() {
		t.Fatal("needsPagination() = false for 40 lines on a 13-row terminal")
	}

	down, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	rm := down.(reportModel)

	if rm.offset != 1 {
		t.Fatalf("offset after j = %d, want 1", rm.offset)
	}

	bottom, _ := rm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	rm = bottom.(reportModel)

	if rm.offset != rm.maxOffset() {
		t.Fatalf("offset after G = %d, want maxOffset %d", rm.offset, rm.maxOffset())
	}

	top, _ := rm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	rm = top.(reportModel)

	if rm.offset != 0 {
		t.Fatalf("offset after g = %d, want 0", rm.offset)
	}

	up, _ := rm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	rm = up.(reportModel)

	if rm.offset != 0 {
		t.Fatalf("offset after k at top = %d, want 0 (clamped)", rm.offset)
	}
}

func TestReportModel_QuitKeys(t *testing.T) {
	model := newReportModel(sampleReport(1, 2))

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		updated, cmd := model.Update(key)

		rm := updated.(reportModel)
		if !rm.quitting {
			t.Fatalf("quitting = false after %v", key)
		}

		if cmd == nil {
			t.Fatalf("Update(%v) returned nil cmd, want tea.Quit", key)
		}
	}
}

func TestReportModel_ViewShowsSummaryAndFooter(t *testing.T) {
	model := newReportModel(sampleReport(10, 3))
	model.height = 13

	view := model.View()

	if !strings.Contains(view, "dupescan") {
		t.Fatalf("View() missing header:\n%s", view)
	}

	if !strings.Contains(view, "Groups: 10") {
		t.Fatalf("View() missing summary:\n%s", view)
	}

	if !strings.Contains(view, "q: quit") {
		t.Fatalf("View() missing pager footer:\n%s", view)
	}
}

func TestTUI_SmallReportPrintsDirectly(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// Writing to a buffer: no terminal size, so pagination never engages
	// and the report is printed in full.
	ui := NewTUI(out, errOut)

	report := sampleReport(1, 2)
	report.Diagnostics = []m.Diagnostic{{Path: "/data/bad.txt", Err: "io error"}}

	if err := ui.DisplayReport(context.Background(), report); err != nil {
		t.Fatalf("DisplayReport() error = %v", err)
	}

	if !strings.Contains(out.String(), "/data/g0/f1.txt") {
		t.Fatalf("output missing member:\n%s", out.String())
	}

	if !strings.Contains(errOut.String(), "bad.txt") {
		t.Fatalf("stderr missing diagnostic:\n%s", errOut.String())
	}
}
