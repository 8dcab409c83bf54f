package objects

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/digest"
)

// Reader resolves digests to objects.
type Reader interface {
	Read(hash digest.Digest) (Object, error)
}

// ObjectStore manages storage of objects under <repo>/.gitcas/objects.
// It holds no mutable state and is safe for concurrent use.
type ObjectStore struct {
	repoPath         string // Path to repository root
	compressionLevel int
}

// StoreOption configures an ObjectStore.
type StoreOption func(*ObjectStore)

// WithCompressionLevel sets the zlib level used for new objects.
func WithCompressionLevel(level int) StoreOption {
	return func(s *ObjectStore) {
		s.compressionLevel = level
	}
}

func NewObjectStore(repoPath string, opts ...StoreOption) *ObjectStore {
	store := &ObjectStore{
		repoPath:         repoPath,
		compressionLevel: constants.DefaultCompressionLevel,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// objectPath returns .gitcas/objects/<first 2 chars>/<rest>.
func (store *ObjectStore) objectPath(hash digest.Digest) (dir, file string) {
	shard, name := hash.Shard()
	dir = filepath.Join(store.repoPath, constants.Gitcas, constants.Objects, shard)
	return dir, filepath.Join(dir, name)
}

// Write stores obj and returns its digest. Storing an object that already
// exists is a no-op.
func (store *ObjectStore) Write(obj Object) (digest.Digest, error) {
	data := Encode(obj)

	// Digest is taken over the uncompressed envelope, never the zlib stream.
	hash := digest.Sum(data)
	objectDir, objectFile := store.objectPath(hash)

	_, err := os.Stat(objectFile)
	if err == nil {
		slog.Debug("Object with this hash already exists",
			"hash", hash)
		return hash, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to stat object %s: %w", hash, err)
	}

	// MkdirAll succeeds when a concurrent writer created the directory first.
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	compressedData, err := store.compress(data)
	if err != nil {
		return "", fmt.Errorf("failed to compress object: %w", err)
	}

	if err := writeFileAtomic(objectDir, objectFile, compressedData); err != nil {
		return "", fmt.Errorf("failed to write object file %s: %w", hash, err)
	}

	slog.Debug("Stored object",
		"hash", hash,
		"kind", obj.Kind(),
		"size", len(data),
		"compressed", len(compressedData))

	return hash, nil
}

// writeFileAtomic writes data to a temp file in dir and renames it to path,
// so readers never observe a partially written object.
func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(constants.ObjectPerms); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	// A concurrent writer of the same digest renames identical bytes.
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (store *ObjectStore) compress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer

	writer, err := zlib.NewWriterLevel(&buffer, store.compressionLevel)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		return nil, err
	}

	// Call Close in order to flush any buffered data
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// ReadRaw returns the decompressed envelope bytes stored under hash.
func (store *ObjectStore) ReadRaw(hash digest.Digest) ([]byte, error) {
	if _, err := digest.Parse(string(hash)); err != nil {
		return nil, err
	}
	_, objectFile := store.objectPath(hash)

	file, err := os.Open(objectFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrObjectNotFound, hash, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read object file %s: %w", hash, err)
	}
	defer file.Close()

	reader, err := zlib.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create new reader for decompressed data: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed data: %w", err)
	}

	if actual := digest.Sum(data); actual != hash {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrCorruptObject, hash, actual)
	}

	return data, nil
}

// Read loads and decodes the object stored under hash.
func (store *ObjectStore) Read(hash digest.Digest) (Object, error) {
	data, err := store.ReadRaw(hash)
	if err != nil {
		return nil, err
	}

	obj, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode object %s: %w", hash, err)
	}
	return obj, nil
}

// ReadBlob reads an object and requires it to be a blob.
func (store *ObjectStore) ReadBlob(hash digest.Digest) (*Blob, error) {
	return readAs[*Blob](store, hash, KindBlob)
}

// ReadTree reads an object and requires it to be a tree.
func (store *ObjectStore) ReadTree(hash digest.Digest) (*Tree, error) {
	return readAs[*Tree](store, hash, KindTree)
}

// ReadCommit reads an object and requires it to be a commit.
func (store *ObjectStore) ReadCommit(hash digest.Digest) (*Commit, error) {
	return readAs[*Commit](store, hash, KindCommit)
}

func readAs[T Object](r Reader, hash digest.Digest, want Kind) (T, error) {
	var zero T
	obj, err := r.Read(hash)
	if err != nil {
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%w: object %s is a %s, want %s", ErrTypeMismatch, hash, obj.Kind(), want)
	}
	return typed, nil
}
