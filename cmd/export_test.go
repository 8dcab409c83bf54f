package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KostasZigo/gitcas/internal/config"
	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/objects"
	"github.com/KostasZigo/gitcas/internal/repository"
)

// createTestRootCmd creates fresh root command with the given subcommand.
// Flag values bound to package variables are reset so tests stay independent.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Value.Set(flag.DefValue)
		flag.Changed = false
	})

	testRootCmd := &cobra.Command{Use: "gitcas"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// executeCommand runs cmd with args under a fresh root and returns its stdout.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	testRootCmd := createTestRootCmd(cmd)
	stdout := captureStdout(testRootCmd)
	captureStderr(testRootCmd)
	testRootCmd.SetArgs(append([]string{cmd.Name()}, args...))

	err := testRootCmd.Execute()
	return stdout.String(), err
}

// executeForDigest runs cmd and parses its single-line digest output.
func executeForDigest(t *testing.T, cmd *cobra.Command, args ...string) digest.Digest {
	t.Helper()

	output, err := executeCommand(t, cmd, args...)
	if err != nil {
		t.Fatalf("%s failed: %v", cmd.Name(), err)
	}

	hash, err := digest.Parse(strings.TrimSpace(output))
	if err != nil {
		t.Fatalf("%s printed %q: %v", cmd.Name(), output, err)
	}
	return hash
}

// setupRepository initializes a repository in a temp dir and makes it the working directory.
func setupRepository(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	if err := repository.InitRepository(repoPath); err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	changeToRepoDir(t, repoPath)

	return repoPath
}

// openTestStore opens the object store of the repository at repoPath.
func openTestStore(t *testing.T, repoPath string) *objects.ObjectStore {
	t.Helper()

	cfg, err := config.Load(repoPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return objects.NewObjectStore(repoPath, cfg.StoreOptions()...)
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}
