package main

import (
	"fmt"
	"io"

	"github.com/blagoySimandov/synthdata/internal/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the inferred schema and the prompt without calling the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			input, err := loadInput(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}

			gen, err := generator.NewFromConfig(cfg, nil)
			if err != nil {
				return err
			}

			plan, err := gen.Prepare(cmd.Context(), input)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	addInputFlags(cmd, opts)
	return cmd
}

func printPlan(w io.Writer, plan *generator.Plan) {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintf(w, "Source (%s, %d columns, %d rows)\n", plan.Format, len(plan.Source.Columns), len(plan.Source.Rows))
	fmt.Fprint(w, plan.Schema.String())
	fmt.Fprintln(w)
	heading.Fprintf(w, "Prompt (%d rows)\n", plan.NumRows)
	fmt.Fprint(w, plan.Prompt)
}
