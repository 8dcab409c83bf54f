package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/repository"
	"github.com/KostasZigo/gitcas/utils"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new gitcas repository",
	Long: `The 'init' command sets up a new gitcas repository in the current directory.
It creates a .gitcas directory with an empty object store, HEAD and a default config file.
If a repository already exists, the command will not overwrite existing data.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// runInit executes repository initialization at specified or current directory.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	if err := repository.InitRepository(dirPath); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	cmd.Printf("Initialized empty gitcas repository in %s\n", utils.BuildDirPath(dirPath, constants.Gitcas))
	return nil
}
