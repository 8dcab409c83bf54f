package objects

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/parser"
)

// RawObject is the envelope every object is framed in before hashing:
// "<kind> <size>\0<content>".
type RawObject struct {
	Kind    Kind
	Size    int
	Content []byte
}

// NewRawObject frames content under kind.
func NewRawObject(kind Kind, content []byte) RawObject {
	return RawObject{
		Kind:    kind,
		Size:    len(content),
		Content: content,
	}
}

// Header returns "<kind> <size>\0".
func (r RawObject) Header() string {
	return fmt.Sprintf("%s %d\x00", r.Kind, r.Size)
}

// Bytes returns the envelope bytes.
func (r RawObject) Bytes() []byte {
	return EncodeEnvelope(r.Kind, r.Content)
}

// EncodeEnvelope produces kind ++ ' ' ++ decimal(len(content)) ++ '\0' ++ content.
func EncodeEnvelope(kind Kind, content []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(kind) + 22 + len(content))

	buf.WriteString(string(kind))
	buf.WriteByte(constants.SpaceByte)
	buf.WriteString(strconv.Itoa(len(content)))
	buf.WriteByte(constants.NullByte)
	buf.Write(content)

	return buf.Bytes()
}

// kindParser reads the bytes before the first space.
var kindParser = parser.Left(
	parser.TakeWhile1(parser.Not(constants.SpaceByte)),
	parser.Byte(constants.SpaceByte),
)

// sizeParser reads the decimal size terminated by NUL.
var sizeParser = parser.TryMap(
	parser.Left(parser.TakeWhile1(parser.IsDigit), parser.Byte(constants.NullByte)),
	func(digits []byte) (int, error) {
		return strconv.Atoi(string(digits))
	},
)

// contentParser reads the size then exactly that many bytes.
var contentParser = parser.AndThen(sizeParser, func(size int) parser.Parser[RawObject] {
	return parser.Map(parser.Take(size), func(content []byte) RawObject {
		return RawObject{Size: size, Content: content}
	})
})

var envelopeParser = parser.Complete(parser.Map(
	parser.Seq2(kindParser, contentParser),
	func(p parser.Pair[[]byte, RawObject]) RawObject {
		raw := p.Second
		raw.Kind = Kind(p.First)
		return raw
	},
))

// DecodeEnvelope parses the whole of data as a single envelope. The returned
// content aliases data.
func DecodeEnvelope(data []byte) (RawObject, error) {
	_, raw, err := envelopeParser(data)
	if err != nil {
		return RawObject{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	return raw, nil
}
