package main

import (
	"github.com/odvcencio/xcproj/pkg/pbxproj"
	"github.com/spf13/cobra"
)

func newEncodeCmd(opts *rootOptions) *cobra.Command {
	var inPlace bool
	cmd := &cobra.Command{
		Use:   "encode <file>",
		Short: "Decode a document and write it back in canonical, commented form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			objs, err := decodeDocument(cmd.Context(), args[0], doc)
			if err != nil {
				return err
			}
			encoded, err := pbxproj.EncodeObjects(cmd.Context(), nameTable(opts.cfg, doc), objs)
			if err != nil {
				return err
			}
			return emitObjects(cmd.OutOrStdout(), args[0], inPlace, doc.Names, encoded)
		},
	}
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the file instead of printing")
	return cmd
}
