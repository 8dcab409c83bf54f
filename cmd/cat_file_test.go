package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/KostasZigo/gitcas/internal/config"
	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/objects"
	"github.com/KostasZigo/gitcas/testutils"
)

// storeFixture writes a blob, a tree holding it and a commit of that tree.
func storeFixture(t *testing.T, repoPath string) (blobHash, treeHash, commitHash digest.Digest) {
	t.Helper()

	store := openTestStore(t, repoPath)

	var err error
	if blobHash, err = store.Write(objects.NewBlob([]byte("fixture content\n"))); err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}

	entry, err := objects.NewTreeEntry(objects.ModeRegularFile, "fixture.txt", blobHash)
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}
	tree, err := objects.NewTree([]objects.TreeEntry{*entry})
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}
	if treeHash, err = store.Write(tree); err != nil {
		t.Fatalf("Failed to store tree: %v", err)
	}

	sig := config.Default().Signature(time.Unix(1700000000, 0).UTC())
	commit, err := objects.NewInitialCommit(treeHash, "fixture\n", sig, sig)
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}
	if commitHash, err = store.Write(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return blobHash, treeHash, commitHash
}

func TestCatFileCommand_Type(t *testing.T) {
	repoPath := setupRepository(t)
	blobHash, treeHash, commitHash := storeFixture(t, repoPath)

	tests := []struct {
		hash digest.Digest
		want string
	}{
		{blobHash, "blob\n"},
		{treeHash, "tree\n"},
		{commitHash, "commit\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			output, err := executeCommand(t, catFileCmd, "-t", tt.hash.String())
			if err != nil {
				t.Fatalf("cat-file -t failed: %v", err)
			}
			if output != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, output)
			}
		})
	}
}

func TestCatFileCommand_Size(t *testing.T) {
	repoPath := setupRepository(t)
	blobHash, _, _ := storeFixture(t, repoPath)

	output, err := executeCommand(t, catFileCmd, "-s", blobHash.String())
	if err != nil {
		t.Fatalf("cat-file -s failed: %v", err)
	}
	if want := fmt.Sprintf("%d\n", len("fixture content\n")); output != want {
		t.Errorf("Expected %q, got %q", want, output)
	}
}

func TestCatFileCommand_PrettyBlob(t *testing.T) {
	repoPath := setupRepository(t)
	blobHash, _, _ := storeFixture(t, repoPath)

	output, err := executeCommand(t, catFileCmd, "-p", blobHash.String())
	if err != nil {
		t.Fatalf("cat-file -p failed: %v", err)
	}
	if output != "fixture content\n" {
		t.Errorf("Unexpected blob output %q", output)
	}
}

func TestCatFileCommand_PrettyTree(t *testing.T) {
	repoPath := setupRepository(t)
	blobHash, treeHash, _ := storeFixture(t, repoPath)

	output, err := executeCommand(t, catFileCmd, "-p", treeHash.String())
	if err != nil {
		t.Fatalf("cat-file -p failed: %v", err)
	}

	want := fmt.Sprintf("100644 blob %s\tfixture.txt\n", blobHash)
	if output != want {
		t.Errorf("Expected %q, got %q", want, output)
	}
}

func TestCatFileCommand_PrettyCommit(t *testing.T) {
	repoPath := setupRepository(t)
	_, treeHash, commitHash := storeFixture(t, repoPath)

	output, err := executeCommand(t, catFileCmd, "-p", commitHash.String())
	if err != nil {
		t.Fatalf("cat-file -p failed: %v", err)
	}

	for _, want := range []string{
		"tree " + treeHash.String() + "\n",
		"author gitcas <gitcas@localhost> 1700000000 +0000\n",
		"\nfixture\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
}

func TestCatFileCommand_NotFound(t *testing.T) {
	setupRepository(t)

	_, err := executeCommand(t, catFileCmd, "-p", testutils.RandomHash().String())
	if !errors.Is(err, objects.ErrObjectNotFound) {
		t.Errorf("Expected ErrObjectNotFound, got %v", err)
	}
}

func TestCatFileCommand_InvalidDigest(t *testing.T) {
	setupRepository(t)

	_, err := executeCommand(t, catFileCmd, "-p", "not-a-digest")
	if !errors.Is(err, digest.ErrInvalidDigest) {
		t.Errorf("Expected ErrInvalidDigest, got %v", err)
	}
}

func TestCatFileCommand_FlagValidation(t *testing.T) {
	repoPath := setupRepository(t)
	blobHash, _, _ := storeFixture(t, repoPath)

	tests := []struct {
		name string
		args []string
	}{
		{"no mode flag", []string{blobHash.String()}},
		{"two mode flags", []string{"-p", "-t", blobHash.String()}},
		{"missing object", []string{"-p"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(t, catFileCmd, tt.args...); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
