package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/testutils"
)

func TestWriteTreeCommand(t *testing.T) {
	repoPath := setupRepository(t)
	testutils.CreateTestFile(t, repoPath, "main.go", []byte("package main\n"))
	testutils.CreateTestFile(t, repoPath, "docs/guide.md", []byte("# guide\n"))

	hash := executeForDigest(t, writeTreeCmd)

	tree, err := openTestStore(t, repoPath).ReadTree(hash)
	if err != nil {
		t.Fatalf("Failed to read written tree: %v", err)
	}
	if diff := cmp.Diff([]string{"docs", "main.go"}, tree.Names()); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTreeCommand_EmptyRepository(t *testing.T) {
	setupRepository(t)

	hash := executeForDigest(t, writeTreeCmd)

	if hash != "4b825dc642cb6eb9a060e54bf8d69288fbee4904" {
		t.Errorf("Expected the empty tree digest, got %s", hash)
	}
}

func TestWriteTreeCommand_Subdirectory(t *testing.T) {
	repoPath := setupRepository(t)
	testutils.CreateTestFile(t, repoPath, "top.txt", []byte("top\n"))
	testutils.CreateTestFile(t, repoPath, "sub/inner.txt", []byte("inner\n"))

	hash := executeForDigest(t, writeTreeCmd, filepath.Join(repoPath, "sub"))

	tree, err := openTestStore(t, repoPath).ReadTree(hash)
	if err != nil {
		t.Fatalf("Failed to read written tree: %v", err)
	}
	if diff := cmp.Diff([]string{"inner.txt"}, tree.Names()); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTreeCommand_OutsideRepository(t *testing.T) {
	changeToRepoDir(t, t.TempDir())

	_, err := executeCommand(t, writeTreeCmd)
	if err == nil || !strings.Contains(err.Error(), constants.Gitcas+" directory not found") {
		t.Errorf("Expected repository not found error, got %v", err)
	}
}
