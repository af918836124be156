// Command pdf2xlsx converts a PDF's tables into an Excel workbook locally,
// using the same pipeline as the API server.
//
//	pdf2xlsx statement.pdf
//	pdf2xlsx statement.pdf -o out.xlsx --pages "1-3, 5" --tolerance 1.5
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/pdfhustle-api/internal/logger"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/converter"
	"github.com/Shimizu-Technology/pdfhustle-api/internal/services/tables"
)

var (
	outputPath string
	pageRange  string
	tolerance  float64
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pdf2xlsx [input.pdf]",
		Short: "Convert the tables in a PDF into an Excel workbook",
		Long: `pdf2xlsx reads the text layer of a PDF, groups it into rows and
columns, and writes one worksheet per page that holds a table.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger.Setup(logger.Config{Level: level, Format: "console", Output: os.Stderr, Service: "pdf2xlsx"})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd.OutOrStdout(), args[0])
		},
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: input name with .xlsx, next to the input)")
	rootCmd.Flags().StringVar(&pageRange, "pages", "all", `Pages to convert, e.g. "1-3, 5"`)
	rootCmd.Flags().Float64Var(&tolerance, "tolerance", tables.DefaultRowTolerance, "Vertical distance in points within which text shares a row")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each pipeline step")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", inputPath)
		}
		return fmt.Errorf("failed to read input: %w", err)
	}

	result, err := converter.New(tolerance).Convert(ctx, data, converter.Options{PageRange: pageRange})
	if err != nil {
		log.Debug().Err(err).Str("file", inputPath).Msg("conversion failed")
		return errors.New(converter.Message(err))
	}

	dest := outputPath
	if dest == "" {
		dest = filepath.Join(filepath.Dir(inputPath), converter.OutputFilename(filepath.Base(inputPath)))
	}
	if err := os.WriteFile(dest, result.Workbook, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(out, "Wrote %s\n", dest)
	fmt.Fprintf(out, "  pages:  %d\n", result.PageCount)
	fmt.Fprintf(out, "  tables: %d\n", result.TableCount)
	fmt.Fprintf(out, "  sheets: %s\n", strings.Join(result.Sheets, ", "))
	return nil
}
