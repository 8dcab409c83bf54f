package objects

import (
	"fmt"

	"github.com/KostasZigo/gitcas/internal/digest"
)

// Kind is the type tag written at the start of every envelope.
type Kind string

const (
	KindBlob   Kind = "blob"
	KindTree   Kind = "tree"
	KindCommit Kind = "commit"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindBlob, KindTree, KindCommit:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// Object represents any object that can be stored.
// The set of implementations is closed: *Blob, *Tree and *Commit.
type Object interface {
	// Kind returns the envelope type tag.
	Kind() Kind

	// Payload returns the kind-specific content, without the envelope header.
	Payload() []byte

	sealed()
}

// Encode returns the envelope bytes of obj: "<kind> <size>\0<payload>".
func Encode(obj Object) []byte {
	switch o := obj.(type) {
	case *Blob:
		return EncodeEnvelope(KindBlob, o.Payload())
	case *Tree:
		return EncodeEnvelope(KindTree, o.Payload())
	case *Commit:
		return EncodeEnvelope(KindCommit, o.Payload())
	default:
		panic(fmt.Sprintf("objects: unexpected object type %T", obj))
	}
}

// Hash returns the digest obj is stored under.
func Hash(obj Object) digest.Digest {
	return digest.Sum(Encode(obj))
}

// Decode parses envelope bytes into a typed object.
func Decode(data []byte) (Object, error) {
	raw, err := DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}

// FromRaw dispatches a decoded envelope to its typed object.
func FromRaw(raw RawObject) (Object, error) {
	switch raw.Kind {
	case KindBlob:
		return NewBlob(raw.Content), nil
	case KindTree:
		return ParseTree(raw.Content)
	case KindCommit:
		return ParseCommit(raw.Content)
	default:
		return nil, fmt.Errorf("%w: %w: %q", ErrMalformedObject, ErrUnknownKind, raw.Kind)
	}
}
