package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitcas/internal/config"
	"github.com/KostasZigo/gitcas/internal/objects"
	"github.com/KostasZigo/gitcas/internal/repository"
)

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int, argNames string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, argNames, len(args))
		}
		return nil
	}
}

// maximumArgs validates command receives at most n positional arguments.
// Returns error with usage help if argument limit exceeded.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// openStore finds the repository containing dir and opens its object store
// with the repository config applied.
func openStore(dir string) (*objects.ObjectStore, config.Config, error) {
	repoPath, err := repository.FindRoot(dir)
	if err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := config.Load(repoPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	return objects.NewObjectStore(repoPath, cfg.StoreOptions()...), cfg, nil
}
