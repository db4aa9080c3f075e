package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/leek/codebase"
	"github.com/dhamidi/leek/leekscript/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Check that LeekScript files parse and render back unchanged",
		Long: `Parse every LeekScript file given, or found below the given directories,
and verify that rendering the tree reproduces the file byte for byte.

Exits with status 1 if any file fails to parse or does not round-trip.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var checked, failed int
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}
				c := codebase.New(arg, cfg)
				if info.IsDir() {
					err = c.ScanAll()
				} else {
					err = c.ScanFile(arg)
				}
				if err != nil {
					return fmt.Errorf("scan %s: %w", arg, err)
				}

				for _, f := range c.Errors() {
					failed++
					fmt.Fprintln(cmd.OutOrStdout(), f.ParseErr)
				}
				for _, path := range c.Paths() {
					checked++
					f := c.GetFile(path)
					if f.ParseErr != nil {
						continue
					}
					if msg := checkFile(f); msg != "" {
						failed++
						fmt.Fprintln(cmd.OutOrStdout(), msg)
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, checked)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d files\n", checked)
			return nil
		},
	}

	return cmd
}

// checkFile returns a one-line report for a failing file, or "".
func checkFile(f *codebase.FileInfo) string {
	if f.ParseErr != nil {
		return f.ParseErr.Error()
	}
	src := string(f.Content)
	out := parser.Text(f.File)
	if out == src {
		return ""
	}
	i := 0
	for i < len(src) && i < len(out) && src[i] == out[i] {
		i++
	}
	return fmt.Sprintf("%s: rendered text differs from source at offset %d", f.Path, i)
}
