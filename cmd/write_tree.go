package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/worktree"
)

var writeTreeCmd = &cobra.Command{
	Use:   "write-tree [directory]",
	Short: "Store a directory as a tree object",
	Long: `Recursively store every regular file under the directory as a blob and every
non-empty subdirectory as a tree, then print the digest of the root tree.
The .gitcas directory is never stored. Defaults to the current directory.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runWriteTree,
}

func init() {
	rootCmd.AddCommand(writeTreeCmd)
}

func runWriteTree(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	store, _, err := openStore(dirPath)
	if err != nil {
		return err
	}

	hash, err := worktree.NewTreeWriter(store, constants.DefaultWriteConcurrency).WriteTree(dirPath)
	if err != nil {
		return fmt.Errorf("failed to write tree: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
