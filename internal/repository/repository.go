package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitcas/internal/config"
	"github.com/KostasZigo/gitcas/internal/constants"
)

func InitRepository(path string) error {
	// Resolves and adds OS specific separator
	gitcasDir := filepath.Join(path, constants.Gitcas)

	if err := checkRepositoryDoesNotExist(gitcasDir); err != nil {
		return err
	}

	// Track if initialization of gitcas directories and files was successful
	// Default value: false
	var initSuccess bool

	// Defer a func to clean up any directories/files in the case that
	// repository initialization failed (not all directories/files were created successfully).
	// If all resources got created successfully initSuccess is true, and the clean-up
	//  is not executed
	defer func() {
		if !initSuccess {
			cleanupRepository(gitcasDir)
		}
	}()

	directories := []string{
		gitcasDir,
		filepath.Join(gitcasDir, constants.Objects),
		filepath.Join(gitcasDir, constants.Refs),
		filepath.Join(gitcasDir, constants.Refs, constants.Heads),
		filepath.Join(gitcasDir, constants.Refs, constants.Tags),
	}

	// Create all gitcas directories
	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	// Create HEAD file pointing to main branch
	headFile := filepath.Join(gitcasDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"

	if err := os.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to create HEAD file: %w", err)
	}

	if err := config.Write(path, config.Default()); err != nil {
		return err
	}

	initSuccess = true
	return nil
}

// FindRoot locates the repository containing dir by walking up the
// directory tree until a .gitcas directory is found.
func FindRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		gitcasPath := filepath.Join(dir, constants.Gitcas)
		if info, err := os.Stat(gitcasPath); err == nil && info.IsDir() {
			return dir, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .gitcas
			return "", fmt.Errorf("%s directory not found", constants.Gitcas)
		}
		dir = parent
	}
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", path)
}

// Removes the entire .gitcas directory if it exists
func cleanupRepository(gitcasDir string) {
	if _, err := os.Stat(gitcasDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", gitcasDir)

		if err := os.RemoveAll(gitcasDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", gitcasDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", gitcasDir)
		}
	}
}
