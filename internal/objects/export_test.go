package objects

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/testutils"
)

// objectCmpOpts lets cmp compare the unexported fields of the object types.
var objectCmpOpts = cmp.AllowUnexported(Blob{}, Tree{}, TreeEntry{}, Commit{})

// assertObjectEqual verifies two objects are structurally equal.
func assertObjectEqual(t *testing.T, want, got Object) {
	t.Helper()

	if diff := cmp.Diff(want, got, objectCmpOpts); diff != "" {
		t.Errorf("Object mismatch (-want +got):\n%s", diff)
	}
}

// rawHash builds a digest whose raw bytes are 0x00, 0x01, ... 0x13.
func rawHash(t *testing.T) digest.Digest {
	t.Helper()

	raw := make([]byte, 20)
	for i := range raw {
		raw[i] = byte(i)
	}
	hash, err := digest.FromRaw(raw)
	if err != nil {
		t.Fatalf("Failed to build digest: %v", err)
	}
	return hash
}

// createTreeEntry creates tree entry and fails test on error.
func createTreeEntry(t *testing.T, mode FileMode, name string, hash digest.Digest) TreeEntry {
	t.Helper()

	entry, err := NewTreeEntry(mode, name, hash)
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}

	return *entry
}

// createTree creates tree from entries and fails test on error.
func createTree(t *testing.T, entries []TreeEntry) *Tree {
	t.Helper()

	tree, err := NewTree(entries)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	return tree
}

// createTestSignature returns a signature with a fixed, whole-second timestamp.
func createTestSignature(name, email string, offsetHours int) Signature {
	zone := time.FixedZone("", offsetHours*3600)
	return Signature{
		Name:  name,
		Email: email,
		When:  time.Date(2024, time.March, 9, 14, 30, 0, 0, zone),
	}
}

// createCommit creates a commit with random tree, message and identities.
func createCommit(t *testing.T, parentHash digest.Digest) *Commit {
	t.Helper()

	author := createTestSignature(testutils.RandomString(5), testutils.RandomString(8)+"@example.com", 2)
	committer := createTestSignature(testutils.RandomString(5), testutils.RandomString(8)+"@example.com", -7)

	commit, err := NewCommit(testutils.RandomHash(), parentHash, testutils.RandomString(20)+"\n", author, committer)
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	return commit
}

// newTestStore creates an object store over a temporary repository.
func newTestStore(t *testing.T, opts ...StoreOption) (*ObjectStore, string) {
	t.Helper()

	repoPath := testutils.SetupTestRepoWithGitcasDir(t)
	return NewObjectStore(repoPath, opts...), repoPath
}

// writeObject stores obj and fails test on error.
func writeObject(t *testing.T, store *ObjectStore, obj Object) digest.Digest {
	t.Helper()

	hash, err := store.Write(obj)
	if err != nil {
		t.Fatalf("Failed to store %s: %v", obj.Kind(), err)
	}

	return hash
}
