package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-extractor/internal/models"
	"github.com/insightdelivered/statement-extractor/internal/pipeline"
	"github.com/insightdelivered/statement-extractor/internal/writer"
)

type extractOptions struct {
	format      string
	output      string
	rulesFile   string
	showSkipped bool
	textInput   bool
}

func newExtractCmd(a *app) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <input.pdf> [input2.pdf ...]",
		Short: "Extract transactions from statement PDFs",
		Example: `  # Write statement.csv next to the input
  statement-extractor extract statement.pdf

  # JSON on stdout
  statement-extractor extract --format json --output - statement.pdf

  # Custom category keywords, show lines that were skipped
  statement-extractor extract --rules rules.yaml --skipped jan.pdf feb.pdf

  # Re-run parsing over text saved from another tool
  statement-extractor extract --text statement.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", writer.FormatCSV, "Output format: "+strings.Join(writer.Formats(), ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `Output file path, "-" for stdout (defaults to input filename with the format's extension)`)
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "YAML file with revenue keywords and category rules")
	cmd.Flags().BoolVar(&opts.showSkipped, "skipped", false, "Print the lines that were not turned into transactions")
	cmd.Flags().BoolVar(&opts.textInput, "text", false, "Inputs are already-extracted statement text, not PDFs")

	return cmd
}

func (a *app) runExtract(ctx context.Context, stdout, stderr io.Writer, opts *extractOptions, inputs []string) error {
	if len(inputs) > 1 && opts.output != "" && opts.output != "-" {
		return errors.New("--output names a single file; omit it when converting several inputs")
	}

	w, err := writer.ForFormat(opts.format)
	if err != nil {
		return err
	}
	p, err := a.buildPipeline(opts.rulesFile)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		if err := a.processFile(ctx, p, w, stdout, stderr, opts, input); err != nil {
			return fmt.Errorf("processing %s: %w", input, err)
		}
	}
	return nil
}

func (a *app) processFile(ctx context.Context, p *pipeline.Pipeline, w writer.Writer, stdout, stderr io.Writer, opts *extractOptions, inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Processing: %s\n", inputPath)

	var res *models.Result
	if opts.textInput {
		res = p.FromText(string(data))
	} else {
		if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
			return fmt.Errorf("expected .pdf file, got %q (use --text for plain text)", ext)
		}
		if v := pipeline.ValidateFile(models.FileInfo{Type: pipeline.PDFMimeType, Size: int64(len(data))}); !v.IsValid {
			return errors.New(v.Error)
		}
		res, err = p.Run(ctx, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "  Extracted text from %d page(s)\n", res.PageCount)
	}

	fmt.Fprintf(stderr, "  Found %d transaction(s)\n", len(res.Transactions))
	if len(res.Transactions) == 0 {
		fmt.Fprintln(stderr, "  Warning: No transactions found. The statement layout may not match the known line shapes.")
		if res.PossiblyScanned {
			fmt.Fprintln(stderr, "  The PDF has almost no text layer and is probably a scanned image.")
		}
	}
	if opts.showSkipped {
		printSkipped(stderr, res.Skipped)
	}

	if opts.output == "-" {
		return w.Write(stdout, res.Transactions)
	}

	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + w.Extension()
	}
	if err := writer.WriteToFile(outPath, w, res.Transactions); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "  Output: %s\n", outPath)
	return nil
}

func printSkipped(out io.Writer, skipped []models.SkippedLine) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(out, "  Skipped %d line(s):\n", len(skipped))
	for _, s := range skipped {
		rule := ""
		if s.Rule != "" {
			rule = " [" + s.Rule + "]"
		}
		fmt.Fprintf(out, "    %4d %-15s%s %s\n", s.Line, s.Reason, rule, s.Text)
	}
}
