package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dupescan.dev/pkg/dupescan/internal/controller"
	"dupescan.dev/pkg/dupescan/internal/domain/mocks"
	m "dupescan.dev/pkg/dupescan/internal/model"
)

// chdirTemp keeps log and report files produced by command runs out of the
// working tree.
func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return tempDir
}

func newScanTestCmd(t *testing.T, mockScanner *mocks.MockScanner) *bytes.Buffer {
	t.Helper()

	originalScanner := scanner
	scanner = mockScanner
	t.Cleanup(func() { scanner = originalScanner })

	return &bytes.Buffer{}
}

func TestRootCmd_PassesOptions(t *testing.T) {
	chdirTemp(t)

	mockScanner := mocks.NewMockScanner(t)
	out := newScanTestCmd(t, mockScanner)

	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	originalUI := ui
	ui = controller.NewSimpleUI(cmd)
	defer func() { ui = originalUI }()

	root := t.TempDir()

	mockScanner.On("Scan", mock.Anything, mock.MatchedBy(func(opts m.ScanOptions) bool {
		return opts.Root == m.Path(root) &&
			len(opts.Filters) == 2 &&
			opts.Filters[0] == "*.txt" &&
			opts.Filters[1] == "*.md" &&
			opts.ExcludeEmpty &&
			opts.CaseSensitive &&
			!opts.SizeOnly &&
			opts.Threads == 2
	})).Return(m.Report{Root: m.Path(root)}, nil)

	cmd.SetArgs([]string{root, "*.txt", "*.md", "--exclude-empty", "--case-sensitive", "--parallel", "2"})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "No duplicate files found.")

	mockScanner.AssertExpectations(t)
}

func TestRootCmd_SizeOnlyFlag(t *testing.T) {
	chdirTemp(t)

	mockScanner := mocks.NewMockScanner(t)
	out := newScanTestCmd(t, mockScanner)

	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	originalUI := ui
	ui = controller.NewSimpleUI(cmd)
	defer func() { ui = originalUI }()

	root := t.TempDir()

	mockScanner.On("Scan", mock.Anything, mock.MatchedBy(func(opts m.ScanOptions) bool {
		return opts.SizeOnly && !opts.ExcludeEmpty && !opts.CaseSensitive
	})).Return(m.Report{Root: m.Path(root)}, nil)

	cmd.SetArgs([]string{root, "--size-only"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockScanner.AssertExpectations(t)
}

func TestRootCmd_ScanErrorPropagates(t *testing.T) {
	chdirTemp(t)

	mockScanner := mocks.NewMockScanner(t)
	newScanTestCmd(t, mockScanner)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockScanner.On("Scan", mock.Anything, mock.Anything).
		Return(m.Report{}, assert.AnError)

	cmd.SetArgs([]string{t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestRootCmd_WritesReportWhenOutputSet(t *testing.T) {
	tempDir := chdirTemp(t)

	mockScanner := mocks.NewMockScanner(t)
	out := newScanTestCmd(t, mockScanner)

	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	originalUI := ui
	ui = controller.NewSimpleUI(cmd)
	defer func() { ui = originalUI }()

	root := t.TempDir()
	report := m.Report{
		Root:    m.Path(root),
		Scanned: 2,
		Groups: []m.DuplicateGroup{
			{
				Size:   3,
				Digest: "feed",
				Files: []m.FileDescriptor{
					{Path: m.Path(filepath.Join(root, "a.txt")), Size: 3, Digest: "feed"},
					{Path: m.Path(filepath.Join(root, "b.txt")), Size: 3, Digest: "feed"},
				},
			},
		},
	}

	mockScanner.On("Scan", mock.Anything, mock.Anything).Return(report, nil)

	reportPath := filepath.Join(tempDir, "scan.yaml")
	cmd.SetArgs([]string{root, "--output", reportPath})
	err := cmd.Execute()
	require.NoError(t, err)

	loaded, err := reportStore.LoadReport(m.Path(reportPath))
	require.NoError(t, err)
	assert.Equal(t, report, loaded)

	mockScanner.AssertExpectations(t)
}

func TestRootCmd_FlagDefaults(t *testing.T) {
	cmd := newRootCmd()

	parallel := cmd.Flags().Lookup(parallelFlagName)
	require.NotNil(t, parallel)
	assert.Equal(t, strconv.Itoa(runtime.NumCPU()), parallel.DefValue)

	for _, name := range []string{excludeEmptyFlagName, sizeOnlyFlagName, caseSensitiveFlagName} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue, name)
	}

	output := cmd.Flags().Lookup(outputFlagName)
	require.NotNil(t, output)
	assert.Equal(t, "", output.DefValue)
}

func TestRootCmd_RequiresFolderArgument(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
}
