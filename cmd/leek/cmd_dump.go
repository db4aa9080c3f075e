package main

import (
	"fmt"

	"github.com/dhamidi/leek/format"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the tree of a LeekScript file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseSourceFile(args[0])
			if err != nil {
				return err
			}
			if err := format.NewASTJSONEncoder(cmd.OutOrStdout(), includePositions).Encode(f); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includePositions, "positions", true, "include source spans")

	return cmd
}
