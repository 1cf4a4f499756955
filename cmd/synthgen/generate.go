package main

import (
	"fmt"
	"io"
	"os"

	"github.com/blagoySimandov/synthdata/internal/generator"
	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic rows and write them as a JSON array",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			event := logging.NewWideEvent("cli_generate")
			ctx := logging.WithContext(cmd.Context(), event)
			defer logging.Emit(ctx)

			input, err := loadInput(ctx, cfg, opts)
			if err != nil {
				return err
			}

			client, err := generator.NewCompletionClient(ctx, cfg)
			if err != nil {
				return err
			}
			gen, err := generator.NewFromConfig(cfg, client)
			if err != nil {
				return err
			}

			out, err := gen.Generate(ctx, input)
			if err != nil {
				return err
			}

			if err := writeRecords(cmd.OutOrStdout(), opts.output, out.Records()); err != nil {
				return err
			}
			logging.EnrichStage(ctx, string(models.StageResponded))
			if opts.output != "" {
				color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", len(out.Rows), opts.output)
			}
			return nil
		},
	}
	addInputFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON to this file instead of stdout")
	return cmd
}

func writeRecords(stdout io.Writer, path string, records []models.Record) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
