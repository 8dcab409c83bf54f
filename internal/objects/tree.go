package objects

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/parser"
)

type FileMode string

const (
	ModeRegularFile FileMode = "100644" // Regular non-executable file
	ModeExecutable  FileMode = "100755" // Executable file
	ModeDirectory   FileMode = "40000"  // Directory (tree)
)

func (m FileMode) IsValid() bool {
	switch m {
	case ModeRegularFile, ModeExecutable, ModeDirectory:
		return true
	default:
		return false
	}
}

// ParseFileMode maps mode text to a FileMode, failing with *ModeError.
func ParseFileMode(text string) (FileMode, error) {
	mode := FileMode(text)
	if !mode.IsValid() {
		return "", &ModeError{Mode: text}
	}
	return mode, nil
}

// Kind returns the kind of object an entry with this mode points at.
func (m FileMode) Kind() Kind {
	if m == ModeDirectory {
		return KindTree
	}
	return KindBlob
}

// TreeEntry represents a single entry in a tree object
type TreeEntry struct {
	mode FileMode
	name string
	hash digest.Digest
}

func NewTreeEntry(mode FileMode, name string, hash digest.Digest) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, &ModeError{Mode: string(mode)}
	}
	if name == "" || strings.IndexByte(name, constants.NullByte) >= 0 {
		return nil, fmt.Errorf("invalid tree entry name %q", name)
	}
	if _, err := digest.Parse(string(hash)); err != nil {
		return nil, fmt.Errorf("invalid tree entry %s: %w", name, err)
	}
	return &TreeEntry{
		mode: mode,
		name: name,
		hash: hash,
	}, nil
}

func (e *TreeEntry) Mode() FileMode {
	return e.mode
}

func (e *TreeEntry) Name() string {
	return e.name
}

func (e *TreeEntry) Hash() digest.Digest {
	return e.hash
}

func (e *TreeEntry) IsDirectory() bool {
	return e.mode == ModeDirectory
}

func (e *TreeEntry) IsExecutable() bool {
	return e.mode == ModeExecutable
}

// Pack appends the wire form of the entry to buf:
// <mode> <name>\0<20-byte binary hash>
func (e *TreeEntry) Pack(buf *bytes.Buffer) {
	buf.WriteString(string(e.mode))
	buf.WriteByte(constants.SpaceByte)
	buf.WriteString(e.name)
	buf.WriteByte(constants.NullByte)

	// Entries are validated on construction, so the hash is well formed.
	raw, _ := e.hash.Raw()
	buf.Write(raw)
}

var (
	modeParser = parser.TryMap(
		parser.Left(parser.TakeWhile1(parser.Not(constants.SpaceByte)), parser.Byte(constants.SpaceByte)),
		func(text []byte) (FileMode, error) {
			return ParseFileMode(string(text))
		},
	)

	nameParser = parser.Map(
		parser.Left(parser.TakeWhile1(parser.Not(constants.NullByte)), parser.Byte(constants.NullByte)),
		func(name []byte) string { return string(name) },
	)

	hashParser = parser.TryMap(parser.Take(constants.HashByteLength), digest.FromRaw)

	treeEntryParser = parser.Map(
		parser.Seq3(modeParser, nameParser, hashParser),
		func(t parser.Triple[FileMode, string, digest.Digest]) TreeEntry {
			return TreeEntry{mode: t.First, name: t.Second, hash: t.Third}
		},
	)

	treeEntriesParser = parser.OneOrMore(treeEntryParser)
)

// ParseTreeEntry decodes one packed entry from the front of data and returns
// the bytes that follow it.
func ParseTreeEntry(data []byte) (TreeEntry, []byte, error) {
	rest, entry, err := treeEntryParser(data)
	if err != nil {
		return TreeEntry{}, data, err
	}
	return entry, rest, nil
}

// ParseTreeEntries decodes packed entries until data is exhausted. Empty
// input is an empty tree.
func ParseTreeEntries(data []byte) ([]TreeEntry, error) {
	if len(data) == 0 {
		return []TreeEntry{}, nil
	}

	rest, entries, err := treeEntriesParser(data)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		// Re-parse the leftover entry to report why it was rejected.
		if _, _, err := treeEntryParser(rest); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%d trailing bytes after tree entries", len(rest))
	}
	return entries, nil
}

// Tree represents a tree object (directory)
type Tree struct {
	entries []TreeEntry
}

// NewTree creates a tree from entries in canonical order.
func NewTree(treeEntries []TreeEntry) (*Tree, error) {
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)

	slices.SortStableFunc(entries, compareTreeEntries)

	for i := 1; i < len(entries); i++ {
		if entries[i].name == entries[i-1].name {
			return nil, fmt.Errorf("duplicate tree entry %q", entries[i].name)
		}
	}

	return &Tree{entries: entries}, nil
}

// ParseTree decodes a tree payload. Entry order is preserved as stored.
func ParseTree(content []byte) (*Tree, error) {
	entries, err := ParseTreeEntries(content)
	if err != nil {
		return nil, fmt.Errorf("%w: tree: %w", ErrMalformedObject, err)
	}
	return &Tree{entries: entries}, nil
}

// compareTreeEntries implements git's tree entry sorting rules:
// - Entries are sorted by name
// - Directory names are treated as if they have a trailing "/" for comparison
// - This ensures correct ordering when directories and files have similar names
func compareTreeEntries(a, b TreeEntry) int {
	return strings.Compare(getSortableName(a), getSortableName(b))
}

// getSortableName returns the name used for sorting.
// For directories, appends "/" to follow git's sorting convention.
func getSortableName(entry TreeEntry) string {
	if entry.IsDirectory() {
		return entry.Name() + "/"
	}
	return entry.Name()
}

func (t *Tree) Kind() Kind {
	return KindTree
}

// Payload packs the entries in their current order.
func (t *Tree) Payload() []byte {
	var buf bytes.Buffer
	for i := range t.entries {
		t.entries[i].Pack(&buf)
	}
	return buf.Bytes()
}

func (t *Tree) Hash() digest.Digest {
	return Hash(t)
}

// Entries returns all tree entries
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Names returns entry names in stored order.
func (t *Tree) Names() []string {
	names := make([]string, len(t.entries))
	for i, entry := range t.entries {
		names[i] = entry.name
	}
	return names
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree{entries: %d}", len(t.entries))
}

// FindEntry finds an entry by name
func (t *Tree) FindEntry(name string) (*TreeEntry, bool) {
	for i := range t.entries {
		if t.entries[i].name == name {
			return &t.entries[i], true
		}
	}
	return nil, false
}

func (*Tree) sealed() {}
