package objects

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEnvelope marks bytes that do not follow "<kind> <size>\0<content>".
	ErrMalformedEnvelope = errors.New("malformed object envelope")

	// ErrMalformedObject marks a well-framed object whose payload cannot be decoded.
	ErrMalformedObject = errors.New("malformed object")

	// ErrUnknownKind marks an envelope whose kind is not blob, tree or commit.
	ErrUnknownKind = errors.New("unknown object kind")

	// ErrUnknownMode marks a tree entry with an unrecognized mode string.
	ErrUnknownMode = errors.New("unknown tree entry mode")

	// ErrObjectNotFound is returned when no object is stored under a digest.
	ErrObjectNotFound = errors.New("object not found")

	// ErrCorruptObject is returned when stored bytes do not hash to their digest.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrTypeMismatch is returned by typed reads when the stored kind differs.
	ErrTypeMismatch = errors.New("object type mismatch")
)

// ModeError reports the offending mode text of a tree entry.
type ModeError struct {
	Mode string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("unknown tree entry mode %s", e.Mode)
}

func (e *ModeError) Is(target error) bool {
	return target == ErrUnknownMode
}
