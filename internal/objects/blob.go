package objects

import (
	"fmt"
	"os"

	"github.com/KostasZigo/gitcas/internal/digest"
)

// Blob is opaque file content.
type Blob struct {
	content []byte
}

// NewBlob copies content into a new Blob.
func NewBlob(content []byte) *Blob {
	return &Blob{content: append([]byte{}, content...)}
}

func NewBlobFromFile(filepath string) (*Blob, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return &Blob{content: content}, nil
}

func (b *Blob) Kind() Kind {
	return KindBlob
}

func (b *Blob) Payload() []byte {
	return b.content
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

func (b *Blob) Hash() digest.Digest {
	return Hash(b)
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{size: %d bytes}", b.Size())
}

func (*Blob) sealed() {}
