package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/leek/codebase"
	"github.com/spf13/cobra"
)

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols <file>",
		Short: "List the classes, members, functions and globals of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseSourceFile(args[0])
			if err != nil {
				return err
			}
			printSymbols(cmd.OutOrStdout(), codebase.ExtractSymbols(args[0], f), 0)
			return nil
		},
	}
}

func printSymbols(w io.Writer, symbols []codebase.Symbol, depth int) {
	for _, s := range symbols {
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), s.Kind, s.Name)
		if s.Detail != "" {
			line += " " + s.Detail
		}
		fmt.Fprintf(w, "%-48s %s\n", line, s.NameSpan.Start)
		printSymbols(w, s.Children, depth+1)
	}
}
