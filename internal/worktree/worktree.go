// Package worktree stores a directory on disk as a tree of objects.
package worktree

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/objects"
)

// Writer stores objects. *objects.ObjectStore satisfies it.
type Writer interface {
	Write(obj objects.Object) (digest.Digest, error)
}

// TreeWriter walks directories bottom-up, writing child blobs and trees
// before the tree that references them.
type TreeWriter struct {
	store       Writer
	concurrency int
}

// NewTreeWriter writes through store, storing at most concurrency children
// of a directory in parallel.
func NewTreeWriter(store Writer, concurrency int) *TreeWriter {
	if concurrency < 1 {
		concurrency = 1
	}
	return &TreeWriter{store: store, concurrency: concurrency}
}

// WriteTree stores dir through store with the default write concurrency.
func WriteTree(store Writer, dir string) (digest.Digest, error) {
	return NewTreeWriter(store, constants.DefaultWriteConcurrency).WriteTree(dir)
}

// WriteTree stores dir and everything beneath it and returns the root tree
// digest. The repository metadata directory is skipped, as are empty
// subdirectories and files that are neither regular files nor directories.
func (w *TreeWriter) WriteTree(dir string) (digest.Digest, error) {
	tree, err := w.writeDir(dir)
	if err != nil {
		return "", err
	}
	if tree == nil {
		tree, err = objects.NewTree(nil)
		if err != nil {
			return "", err
		}
	}
	return w.store.Write(tree)
}

// writeDir builds the tree for dir, storing every child. It returns nil when
// dir has no storable entries.
func (w *TreeWriter) writeDir(dir string) (*objects.Tree, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	// Children are written concurrently into their own slot; nil slots are skipped.
	slots := make([]*objects.TreeEntry, len(dirEntries))

	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for i, dirEntry := range dirEntries {
		i, dirEntry := i, dirEntry
		if dirEntry.Name() == constants.Gitcas {
			continue
		}
		path := filepath.Join(dir, dirEntry.Name())

		g.Go(func() error {
			entry, err := w.writeEntry(path, dirEntry)
			if err != nil {
				return err
			}
			slots[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []objects.TreeEntry
	for _, entry := range slots {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return objects.NewTree(entries)
}

func (w *TreeWriter) writeEntry(path string, dirEntry os.DirEntry) (*objects.TreeEntry, error) {
	info, err := dirEntry.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		subtree, err := w.writeDir(path)
		if err != nil {
			return nil, err
		}
		if subtree == nil {
			slog.Debug("Skipping empty directory", "path", path)
			return nil, nil
		}
		hash, err := w.store.Write(subtree)
		if err != nil {
			return nil, fmt.Errorf("failed to store tree %s: %w", path, err)
		}
		return objects.NewTreeEntry(objects.ModeDirectory, dirEntry.Name(), hash)

	case info.Mode().IsRegular():
		blob, err := objects.NewBlobFromFile(path)
		if err != nil {
			return nil, err
		}
		hash, err := w.store.Write(blob)
		if err != nil {
			return nil, fmt.Errorf("failed to store blob %s: %w", path, err)
		}
		mode := objects.ModeRegularFile
		if info.Mode().Perm()&0111 != 0 {
			mode = objects.ModeExecutable
		}
		return objects.NewTreeEntry(mode, dirEntry.Name(), hash)

	default:
		slog.Debug("Skipping unsupported file type",
			"path", path,
			"mode", info.Mode().String())
		return nil, nil
	}
}
