// Package digest names stored objects by the SHA-1 of their serialized bytes.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/KostasZigo/gitcas/internal/constants"
)

// ErrInvalidDigest is returned when a value cannot be interpreted as a digest.
var ErrInvalidDigest = errors.New("invalid digest")

// Digest is the 40-character lowercase hex rendering of a SHA-1 sum.
type Digest string

// Sum computes the digest of data.
func Sum(data []byte) Digest {
	sum := sha1.Sum(data)
	return Digest(hex.EncodeToString(sum[:]))
}

// Parse validates s as a full-length lowercase hex digest.
func Parse(s string) (Digest, error) {
	if len(s) != constants.HashStringLength {
		return "", fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidDigest, s, len(s), constants.HashStringLength)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return "", fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidDigest, s, c)
		}
	}
	return Digest(s), nil
}

// FromRaw converts the 20 raw bytes embedded in tree entries to a Digest.
func FromRaw(raw []byte) (Digest, error) {
	if len(raw) != constants.HashByteLength {
		return "", fmt.Errorf("%w: raw length %d, want %d", ErrInvalidDigest, len(raw), constants.HashByteLength)
	}
	return Digest(hex.EncodeToString(raw)), nil
}

// Raw returns the 20-byte binary form of d.
func (d Digest) Raw() ([]byte, error) {
	if _, err := Parse(string(d)); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(d))
}

// Shard splits d into the objects/ subdirectory name and the file name.
func (d Digest) Shard() (dir, file string) {
	return string(d[:constants.HashDirPrefixLength]), string(d[constants.HashDirPrefixLength:])
}

func (d Digest) String() string {
	return string(d)
}
