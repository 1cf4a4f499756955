package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blagoySimandov/synthdata/internal/config"
	"github.com/blagoySimandov/synthdata/internal/gcs"
	"github.com/blagoySimandov/synthdata/internal/generator"
	"github.com/blagoySimandov/synthdata/internal/logger"
	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/spf13/cobra"
)

type options struct {
	input  string
	rows   string
	prompt string
	output string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "synthgen",
		Short:         "Generate synthetic rows shaped like a CSV or Excel file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newDescribeCmd())
	return root
}

func addInputFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "source file: local path or gs://bucket/object")
	cmd.Flags().StringVarP(&opts.rows, "rows", "n", "", "number of rows to generate (default from DEFAULT_ROWS)")
	cmd.Flags().StringVarP(&opts.prompt, "prompt", "p", "", "additional instructions for the model")
	_ = cmd.MarkFlagRequired("input")
}

// loadInput resolves flags and configuration into a generation input.
func loadInput(ctx context.Context, cfg *config.Config, opts *options) (*models.GenerationInput, error) {
	numRows, err := generator.ResolveRowCount(opts.rows, cfg.DefaultRows, cfg.MaxRows)
	if err != nil {
		return nil, err
	}

	filename, data, err := readSource(ctx, opts.input, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	return &models.GenerationInput{
		Filename:    filename,
		Data:        data,
		NumRows:     numRows,
		Instruction: opts.prompt,
	}, nil
}

func readSource(ctx context.Context, input string, maxBytes int64) (string, []byte, error) {
	if gcs.IsURI(input) {
		reader, err := gcs.NewObjectReader(ctx, gcs.WithMaxBytes(maxBytes))
		if err != nil {
			return "", nil, err
		}
		defer reader.Close()
		return reader.ReadURI(ctx, input)
	}

	info, err := os.Stat(input)
	if err != nil {
		return "", nil, err
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return "", nil, fmt.Errorf("%s is %d bytes, limit is %d", input, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", input, err)
	}
	return filepath.Base(input), data, nil
}

func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	logger.Setup(os.Stderr, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
