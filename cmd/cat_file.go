package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/objects"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s) <object>",
	Short: "Provide content, kind or size of a stored object",
	Long: `Read an object from the object store and print one of its properties.

  -p  pretty-print the content: blobs verbatim, trees one entry per line,
      commits as their raw header and message
  -t  print the object kind (blob, tree or commit)
  -s  print the content size in bytes`,
	SilenceUsage: true,
	Args:         exactArgs(1, "object"),
	RunE:         runCatFile,
}

var (
	catFilePrettyFlag bool
	catFileTypeFlag   bool
	catFileSizeFlag   bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&catFilePrettyFlag, "pretty", "p", false, "Pretty-print the object content")
	catFileCmd.Flags().BoolVarP(&catFileTypeFlag, "type", "t", false, "Print the object kind")
	catFileCmd.Flags().BoolVarP(&catFileSizeFlag, "size", "s", false, "Print the object size")
	catFileCmd.MarkFlagsOneRequired("pretty", "type", "size")
	catFileCmd.MarkFlagsMutuallyExclusive("pretty", "type", "size")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	hash, err := digest.Parse(args[0])
	if err != nil {
		return err
	}

	store, _, err := openStore(".")
	if err != nil {
		return err
	}

	obj, err := store.Read(hash)
	if err != nil {
		return fmt.Errorf("failed to read object %s: %w", hash, err)
	}

	out := cmd.OutOrStdout()
	switch {
	case catFileTypeFlag:
		fmt.Fprintln(out, obj.Kind())
	case catFileSizeFlag:
		fmt.Fprintln(out, len(obj.Payload()))
	default:
		if tree, ok := obj.(*objects.Tree); ok {
			for _, entry := range tree.Entries() {
				printTreeEntry(out, entry, entry.Name())
			}
			return nil
		}
		_, err = out.Write(obj.Payload())
		return err
	}
	return nil
}
