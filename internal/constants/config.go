package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	HashObjectCmdName = "hash-object"
	CatFileCmdName    = "cat-file"
	LsTreeCmdName     = "ls-tree"
	WriteTreeCmdName  = "write-tree"
	CommitTreeCmdName = "commit-tree"
)

// Repository directory and file names define the gitcas metadata structure.
const (
	// Gitcas is the repository metadata directory.
	Gitcas = ".gitcas"

	// Objects stores content-addressable objects (blobs, trees, commits).
	Objects = "objects"

	// Refs contains branch and tag references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Tags stores tag pointers under refs/.
	Tags = "tags"

	// Head points to current branch or detached commit.
	Head = "HEAD"

	// Config holds the TOML repository configuration.
	Config = "config"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "main"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644

	// ObjectPerms marks stored objects read-only (r--r--r--), they are never rewritten.
	ObjectPerms os.FileMode = 0444
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2
)

// Commit header keywords.
const (
	CommitTreePrefix      = "tree "
	CommitParentPrefix    = "parent "
	CommitAuthorPrefix    = "author "
	CommitCommitterPrefix = "committer "
)

// Object format constants.
const (
	// SpaceByte separates kind from size in headers and mode from name in tree entries.
	SpaceByte = ' '

	// NullByte separates header from content in objects and names from hashes in tree entries.
	NullByte = '\x00'
)

// Time conversion constants for timezone formatting.
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// Defaults applied when the repository config omits a value.
const (
	DefaultUserName  = "gitcas"
	DefaultUserEmail = "gitcas@localhost"

	// DefaultCompressionLevel is zlib's default (-1).
	DefaultCompressionLevel = -1

	// DefaultCacheSize bounds the decoded object cache used by ls-tree -r.
	DefaultCacheSize = 256

	// DefaultWriteConcurrency bounds parallel child writes per directory in write-tree.
	DefaultWriteConcurrency = 8
)
