// Package cmd provides the root command and CLI setup for dupescan.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dupescan.dev/pkg/dupescan/internal/adapter"
	"dupescan.dev/pkg/dupescan/internal/controller"
	"dupescan.dev/pkg/dupescan/internal/domain"
	m "dupescan.dev/pkg/dupescan/internal/model"
)

var fsAdapter adapter.ScanFSAdapter
var reportStore adapter.ReportStore
var scanner domain.Scanner
var ui controller.UI

// outputFlag is the optional path the YAML report is written to.
var outputFlag string

// parallelFlag is the number of verification workers.
var parallelFlag int

var excludeEmptyFlag bool
var sizeOnlyFlag bool
var caseSensitiveFlag bool
var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalScanFSAdapter()
	reportStore = adapter.NewReportStore()
	scanner = domain.NewScanner(fsAdapter)
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

const rootLongDescription = `Dupescan scans a directory tree for duplicate files: files are grouped by
size, fingerprinted with a streaming content digest, and confirmed duplicates
are verified byte for byte before being reported.

Wildcard filters restrict the scan to matching file names:
  dupescan ./documents '*.txt' '*.pdf'
Matching is case-insensitive unless --case-sensitive is set.`

// rootCmd represents the base command; the scan itself runs here.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dupescan <folder> [filter...]",
		Short:        "Find duplicate files in a directory tree",
		Long:         rootLongDescription,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			configureLogger("", verboseFlag)

			opts := m.ScanOptions{
				Root:          m.Path(args[0]),
				Filters:       args[1:],
				CaseSensitive: viper.GetBool(caseSensitiveConfigKey),
				ExcludeEmpty:  viper.GetBool(excludeEmptyConfigKey),
				SizeOnly:      viper.GetBool(sizeOnlyConfigKey),
				Threads:       viper.GetInt(parallelConfigKey),
			}

			report, err := scanner.Scan(c.Context(), opts)
			if err != nil {
				slog.Error("scan failed", "root", opts.Root, "error", err)
				return err
			}

			if err := ui.DisplayReport(c.Context(), report); err != nil {
				return fmt.Errorf("display report: %w", err)
			}

			if output := viper.GetString(outputFlagName); output != "" {
				if err := reportStore.SaveReport(m.Path(output), report); err != nil {
					return err
				}

				slog.Info("report written", "path", output)
			}

			return nil
		},
	}

	configureRootFlags(cmd)

	return cmd
}

// Flag defaults come from the named constants rather than viper: rootCmd is
// built during package variable initialization, before the viper defaults
// exist. Config and env values still win through the viper bindings.
func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&outputFlag, outputFlagName, "o",
		defaultOutput,
		"write the scan report to this path as YAML",
	)
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputFlagName)

	cmd.Flags().IntVarP(&parallelFlag, parallelFlagName, "p", runtime.NumCPU(), "number of parallel verification workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().BoolVar(&excludeEmptyFlag, excludeEmptyFlagName, defaultExcludeEmpty, "exclude zero-byte files from duplicate search")
	bindFlagToConfig(cmd.Flags().Lookup(excludeEmptyFlagName), excludeEmptyConfigKey)

	cmd.Flags().BoolVar(&sizeOnlyFlag, sizeOnlyFlagName, defaultSizeOnly, "compare files by size only, without reading content")
	bindFlagToConfig(cmd.Flags().Lookup(sizeOnlyFlagName), sizeOnlyConfigKey)

	cmd.Flags().BoolVar(&caseSensitiveFlag, caseSensitiveFlagName, defaultCaseSensitive, "match filters with exact case")
	bindFlagToConfig(cmd.Flags().Lookup(caseSensitiveFlagName), caseSensitiveConfigKey)

	cmd.Flags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}
