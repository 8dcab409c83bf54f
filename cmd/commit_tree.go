package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/objects"
)

var commitTreeCmd = &cobra.Command{
	Use:   "commit-tree <tree> [-p <parent>] -m <message>",
	Short: "Create a commit object for a tree",
	Long: `Create a commit pointing at an existing tree and print its digest.

Author and committer are taken from the [user] section of .gitcas/config and
stamped with the current time. The parent, when given, must be a stored commit.`,
	SilenceUsage: true,
	Args:         exactArgs(1, "tree"),
	RunE:         runCommitTree,
}

var (
	commitTreeParentFlag  string
	commitTreeMessageFlag string
)

func init() {
	rootCmd.AddCommand(commitTreeCmd)

	commitTreeCmd.Flags().StringVarP(&commitTreeParentFlag, "parent", "p", "", "Parent commit digest")
	commitTreeCmd.Flags().StringVarP(&commitTreeMessageFlag, "message", "m", "", "Commit message")
	commitTreeCmd.MarkFlagRequired("message")
}

func runCommitTree(cmd *cobra.Command, args []string) error {
	treeHash, err := digest.Parse(args[0])
	if err != nil {
		return err
	}

	store, cfg, err := openStore(".")
	if err != nil {
		return err
	}

	if _, err := store.ReadTree(treeHash); err != nil {
		return fmt.Errorf("invalid tree %s: %w", treeHash, err)
	}

	var parentHash digest.Digest
	if commitTreeParentFlag != "" {
		if parentHash, err = digest.Parse(commitTreeParentFlag); err != nil {
			return err
		}
		if _, err := store.ReadCommit(parentHash); err != nil {
			return fmt.Errorf("invalid parent %s: %w", parentHash, err)
		}
	}

	message := commitTreeMessageFlag
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}

	signature := cfg.Signature(time.Now())
	commit, err := objects.NewCommit(treeHash, parentHash, message, signature, signature)
	if err != nil {
		return err
	}

	hash, err := store.Write(commit)
	if err != nil {
		return fmt.Errorf("failed to store commit: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
