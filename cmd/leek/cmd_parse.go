package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/leek/format"
	"github.com/dhamidi/leek/leekscript/parser"
	"github.com/spf13/cobra"
)

// defaultInput is read when parse is given no file.
const defaultInput = "test_ai"

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a LeekScript file and print its tree",
		Long: `Parse a LeekScript file and print the result.

With the tree format (the default) the outline of the tree is printed,
followed by the source text rebuilt from it. The json format prints the
tree as JSON and the text format only the rebuilt source.

Without a file argument, ` + defaultInput + ` is read from the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := defaultInput
			if len(args) > 0 {
				filename = args[0]
			}
			if !cmd.Flags().Changed("format") {
				outputFormat = cfg.Output.Format
			}
			if !cmd.Flags().Changed("positions") {
				includePositions = cfg.Output.Positions
			}

			f, err := parseSourceFile(filename)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			enc, err := format.NewEncoder(outputFormat, out, includePositions)
			if err != nil {
				return err
			}
			if err := enc.Encode(f); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "tree" {
				fmt.Fprintln(out, "---")
				return format.NewTextEncoder(out).Encode(f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, text)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source spans in tree and json output")

	return cmd
}

// parseSourceFile reads and parses filename with the configured options.
func parseSourceFile(filename string) (*parser.File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	f, err := parser.ParseFile(string(data),
		parser.WithFile(filename),
		parser.WithMaxDepth(cfg.Parser.MaxDepth),
	)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return f, nil
}
