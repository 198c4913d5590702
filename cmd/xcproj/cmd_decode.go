package main

import (
	"fmt"

	"github.com/odvcencio/xcproj/pkg/pbxproj"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode every object of a document and list it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			objs, decodeErr := pbxproj.DecodeObjects(cmd.Context(), doc.Objects)
			out := cmd.OutOrStdout()
			for _, obj := range objs {
				if phase, ok := obj.(pbxproj.FrameworksBuildPhase); ok {
					fmt.Fprintf(out, "%s %s files=%d\n", obj.Reference(), obj.ISA(), phase.Files().Len())
					continue
				}
				fmt.Fprintf(out, "%s %s\n", obj.Reference(), obj.ISA())
			}
			if decodeErr != nil {
				return fmt.Errorf("decode %s: %d object(s) failed:\n%w", args[0], countJoined(decodeErr), decodeErr)
			}
			return nil
		},
	}
}

func countJoined(err error) int {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	if err != nil {
		return 1
	}
	return 0
}
