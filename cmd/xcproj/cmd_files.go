package main

import (
	"fmt"

	"github.com/odvcencio/xcproj/internal/ctxlog"
	"github.com/odvcencio/xcproj/pkg/pbxproj"
	"github.com/spf13/cobra"
)

func newAddFileCmd(opts *rootOptions) *cobra.Command {
	var inPlace bool
	cmd := &cobra.Command{
		Use:   "add-file <file> <phase> <file-ref>",
		Short: "Link a file reference from a frameworks build phase",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editPhase(cmd, opts, args, inPlace, pbxproj.FrameworksBuildPhase.Adding)
		},
	}
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the file instead of printing")
	return cmd
}

func newRemoveFileCmd(opts *rootOptions) *cobra.Command {
	var inPlace bool
	cmd := &cobra.Command{
		Use:   "remove-file <file> <phase> <file-ref>",
		Short: "Unlink a file reference from a frameworks build phase",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editPhase(cmd, opts, args, inPlace, pbxproj.FrameworksBuildPhase.Removing)
		},
	}
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "rewrite the file instead of printing")
	return cmd
}

// editPhase replaces the frameworks build phase args[1] of document args[0]
// with edit(phase, args[2]) and writes the re-encoded objects.
func editPhase(cmd *cobra.Command, opts *rootOptions, args []string, inPlace bool, edit func(pbxproj.FrameworksBuildPhase, pbxproj.Reference) pbxproj.FrameworksBuildPhase) error {
	path, target, file := args[0], pbxproj.Reference(args[1]), pbxproj.Reference(args[2])
	ctx := cmd.Context()

	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	objs, err := decodeDocument(ctx, path, doc)
	if err != nil {
		return err
	}

	found := false
	for i, obj := range objs {
		if obj.Reference() != target {
			continue
		}
		phase, ok := obj.(pbxproj.FrameworksBuildPhase)
		if !ok {
			return fmt.Errorf("%s is a %s, not a %s", target, obj.ISA(), pbxproj.FrameworksBuildPhaseISA)
		}
		edited := edit(phase, file)
		ctxlog.FromContext(ctx).Debug("edited build phase",
			"phase", target, "file", file, "before", phase.Files().Len(), "after", edited.Files().Len())
		objs[i] = edited
		found = true
		break
	}
	if !found {
		return fmt.Errorf("no object %s in %s", target, path)
	}

	encoded, err := pbxproj.EncodeObjects(ctx, nameTable(opts.cfg, doc), objs)
	if err != nil {
		return err
	}
	return emitObjects(cmd.OutOrStdout(), path, inPlace, doc.Names, encoded)
}
