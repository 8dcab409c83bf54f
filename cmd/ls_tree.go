package cmd

import (
	"fmt"
	"io"
	"path"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/objects"
)

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree [--name-only] [-r] <tree>",
	Short: "List the contents of a tree object",
	Long: `List the entries of a tree object in stored order.

Each line has the form "<mode> <kind> <digest>\t<name>". With -r, subtrees are
expanded and only their blobs are listed, named by their path from the root tree.`,
	SilenceUsage: true,
	Args:         exactArgs(1, "tree"),
	RunE:         runLsTree,
}

var (
	lsTreeNameOnlyFlag  bool
	lsTreeRecursiveFlag bool
)

func init() {
	rootCmd.AddCommand(lsTreeCmd)

	lsTreeCmd.Flags().BoolVar(&lsTreeNameOnlyFlag, "name-only", false, "List only entry names")
	lsTreeCmd.Flags().BoolVarP(&lsTreeRecursiveFlag, "recursive", "r", false, "Recurse into subtrees")
}

func runLsTree(cmd *cobra.Command, args []string) error {
	hash, err := digest.Parse(args[0])
	if err != nil {
		return err
	}

	store, cfg, err := openStore(".")
	if err != nil {
		return err
	}

	// Recursive listings revisit shared subtrees, so reads go through the cache.
	reader, err := objects.NewCachedReader(store, cfg.Core.CacheSize)
	if err != nil {
		return err
	}

	return listTree(cmd.OutOrStdout(), reader, hash, "")
}

func listTree(out io.Writer, reader *objects.CachedReader, hash digest.Digest, prefix string) error {
	tree, err := reader.ReadTree(hash)
	if err != nil {
		return fmt.Errorf("failed to read tree %s: %w", hash, err)
	}

	for _, entry := range tree.Entries() {
		name := path.Join(prefix, entry.Name())

		if lsTreeRecursiveFlag && entry.IsDirectory() {
			if err := listTree(out, reader, entry.Hash(), name); err != nil {
				return err
			}
			continue
		}

		if lsTreeNameOnlyFlag {
			fmt.Fprintln(out, name)
			continue
		}
		printTreeEntry(out, entry, name)
	}
	return nil
}

// printTreeEntry writes one "<mode> <kind> <digest>\t<name>" line.
func printTreeEntry(out io.Writer, entry objects.TreeEntry, name string) {
	fmt.Fprintf(out, "%s %s %s\t%s\n", entry.Mode(), entry.Mode().Kind(), entry.Hash(), name)
}
