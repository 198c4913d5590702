package main

import (
	"fmt"

	"github.com/odvcencio/xcproj/pkg/diff"
	"github.com/spf13/cobra"
)

func newDiffCmd(opts *rootOptions) *cobra.Command {
	var summary, exitCode bool
	cmd := &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Show object-level changes between two documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			beforeDoc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			afterDoc, err := readDocument(args[1])
			if err != nil {
				return err
			}
			before, err := decodeDocument(cmd.Context(), args[0], beforeDoc)
			if err != nil {
				return err
			}
			after, err := decodeDocument(cmd.Context(), args[1], afterDoc)
			if err != nil {
				return err
			}

			d := diff.DiffObjects(before, after)
			if summary {
				fmt.Fprint(cmd.OutOrStdout(), diff.FormatSummary(d))
			} else {
				names := nameTable(opts.cfg, beforeDoc, afterDoc)
				fmt.Fprint(cmd.OutOrStdout(), diff.FormatLineDiff(d, renderObject(names)))
			}
			if exitCode && !d.Empty() {
				return fmt.Errorf("diff: %d object(s) differ", len(d.Changes))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "list changed objects only")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the documents differ")
	return cmd
}
