// Package main provides the CLI entry point for advmacro.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/advmacro-go/pkg/advmacro"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/config"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/models"
	"github.com/ukaji3/advmacro-go/pkg/advmacro/output"
)

var (
	cfgFile    string
	outputPath string
	format     string
	pretty     bool
	sheetsDir  string
	strict     bool
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "advmacro",
		Short: "Expand scenario macros in Excel workbooks",
		Long: `advmacro reads a scenario workbook, registers the macros declared on its
macro sheets and writes every scenario sheet with macro calls expanded.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./advmacro.yaml if present)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	expandCmd := &cobra.Command{
		Use:   "expand [input.xlsx]",
		Short: "Expand macro calls and write the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runExpand,
	}
	expandCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	expandCmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml, xlsx, table")
	expandCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	expandCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")
	expandCmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any diagnostic was reported")

	macrosCmd := &cobra.Command{
		Use:   "macros [input.xlsx]",
		Short: "List the macros declared in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runMacros,
	}

	rootCmd.AddCommand(expandCmd, macrosCmd)
	return rootCmd
}

// load reads config and expands the workbook named by args[0].
func load(cmd *cobra.Command, args []string) (*models.WorkbookData, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	wb, err := advmacro.Expand(args[0], opts)
	if err != nil {
		return nil, fmt.Errorf("expansion failed: %w", err)
	}
	return wb, nil
}

func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	switch format {
	case "json", "yaml", "xlsx", "table":
	default:
		return fmt.Errorf("invalid format: %s (must be json, yaml, xlsx, or table)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return fmt.Errorf("--format xlsx requires --output")
	}

	wb, err := load(cmd, args)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), wb); err != nil {
		return err
	}

	// Write per-sheet files
	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if strict && len(wb.Diagnostics) > 0 {
		return fmt.Errorf("%d diagnostic(s) reported", len(wb.Diagnostics))
	}
	return nil
}

func writeOutput(stdout io.Writer, wb *models.WorkbookData) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "xlsx":
		if err := output.SaveXLSX(wb, outputPath); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	case "table":
		if outputPath == "" {
			output.WriteTable(stdout, wb)
			return nil
		}
		var b strings.Builder
		output.WriteTable(&b, wb)
		data = []byte(b.String())
	case "yaml":
		data, err = output.ToYAML(wb)
	default:
		data, err = output.ToJSON(wb, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(stdout, strings.TrimRight(string(data), "\n"))
	}
	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func runMacros(cmd *cobra.Command, args []string) error {
	wb, err := load(cmd, args)
	if err != nil {
		return err
	}
	output.WriteMacroTable(cmd.OutOrStdout(), wb.Macros)
	return nil
}
