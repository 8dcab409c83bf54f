package objects

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KostasZigo/gitcas/internal/constants"
	"github.com/KostasZigo/gitcas/internal/digest"
	"github.com/KostasZigo/gitcas/internal/parser"
	"github.com/KostasZigo/gitcas/utils"
)

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

func (s Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

// Format renders "<name> <<email>> <unix seconds> <±hhmm>".
func (s Signature) Format() string {
	_, offset := s.When.Zone()
	return fmt.Sprintf("%s <%s> %d %s", s.Name, s.Email, s.When.Unix(), utils.FormatTimezone(offset))
}

// ParseSignature parses the output of Signature.Format.
func ParseSignature(text string) (Signature, error) {
	open := strings.LastIndexByte(text, '<')
	closing := strings.LastIndexByte(text, '>')
	if open < 1 || closing < open || text[open-1] != ' ' {
		return Signature{}, fmt.Errorf("invalid signature %q", text)
	}

	fields := strings.Fields(text[closing+1:])
	if len(fields) != 2 {
		return Signature{}, fmt.Errorf("invalid signature %q: want timestamp and timezone", text)
	}
	seconds, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("invalid signature timestamp %q: %w", fields[0], err)
	}
	offset, err := utils.ParseTimezone(fields[1])
	if err != nil {
		return Signature{}, err
	}

	return Signature{
		Name:  text[:open-1],
		Email: text[open+1 : closing],
		When:  time.Unix(seconds, 0).In(time.FixedZone("", offset)),
	}, nil
}

// Commit represents a snapshot of a tree with its history link.
type Commit struct {
	treeHash   digest.Digest
	parentHash digest.Digest
	author     Signature
	committer  Signature
	message    string
}

// NewCommit builds a commit. parentHash is empty for a root commit. The
// message is stored verbatim.
func NewCommit(treeHash, parentHash digest.Digest, message string, author, committer Signature) (*Commit, error) {
	if _, err := digest.Parse(string(treeHash)); err != nil {
		return nil, fmt.Errorf("invalid commit tree: %w", err)
	}
	if parentHash != "" {
		if _, err := digest.Parse(string(parentHash)); err != nil {
			return nil, fmt.Errorf("invalid commit parent: %w", err)
		}
	}
	for _, sig := range []Signature{author, committer} {
		if strings.ContainsAny(sig.Name, "<>\n") || strings.ContainsAny(sig.Email, "<>\n") {
			return nil, fmt.Errorf("invalid signature %q", sig.String())
		}
	}

	return &Commit{
		treeHash:   treeHash,
		parentHash: parentHash,
		author:     author,
		committer:  committer,
		message:    message,
	}, nil
}

func NewInitialCommit(treeHash digest.Digest, message string, author, committer Signature) (*Commit, error) {
	return NewCommit(treeHash, "", message, author, committer)
}

func (c *Commit) Kind() Kind {
	return KindCommit
}

func (c *Commit) Payload() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s%s\n", constants.CommitTreePrefix, c.treeHash)
	if c.parentHash != "" {
		fmt.Fprintf(&buf, "%s%s\n", constants.CommitParentPrefix, c.parentHash)
	}
	fmt.Fprintf(&buf, "%s%s\n", constants.CommitAuthorPrefix, c.author.Format())
	fmt.Fprintf(&buf, "%s%s\n", constants.CommitCommitterPrefix, c.committer.Format())

	// Blank line before message
	buf.WriteByte('\n')
	buf.WriteString(c.message)

	return buf.Bytes()
}

func (c *Commit) Hash() digest.Digest {
	return Hash(c)
}

func (c *Commit) TreeHash() digest.Digest {
	return c.treeHash
}

func (c *Commit) ParentHash() digest.Digest {
	return c.parentHash
}

func (c *Commit) Author() Signature {
	return c.author
}

func (c *Commit) Committer() Signature {
	return c.committer
}

func (c *Commit) Message() string {
	return c.message
}

func (c *Commit) IsInitialCommit() bool {
	return c.parentHash == ""
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{tree: %s, parent: %s, author: %s, message: %q}",
		c.treeHash, c.parentHash, c.author.String(), c.message)
}

func (*Commit) sealed() {}

// headerLine matches "<prefix><value>\n" and yields value.
func headerLine(prefix string) parser.Parser[string] {
	return parser.Map(
		parser.Right(
			parser.Tag([]byte(prefix)),
			parser.Left(parser.TakeWhile1(parser.Not('\n')), parser.Byte('\n')),
		),
		func(value []byte) string { return string(value) },
	)
}

func digestLine(prefix string) parser.Parser[digest.Digest] {
	return parser.TryMap(headerLine(prefix), digest.Parse)
}

func signatureLine(prefix string) parser.Parser[Signature] {
	return parser.TryMap(headerLine(prefix), ParseSignature)
}

var commitParser = parser.Map(
	parser.Seq3(
		parser.Seq2(
			digestLine(constants.CommitTreePrefix),
			parser.Optional(digestLine(constants.CommitParentPrefix), ""),
		),
		parser.Seq2(
			signatureLine(constants.CommitAuthorPrefix),
			signatureLine(constants.CommitCommitterPrefix),
		),
		parser.Right(parser.Byte('\n'), parser.Rest),
	),
	func(t parser.Triple[parser.Pair[digest.Digest, digest.Digest], parser.Pair[Signature, Signature], []byte]) *Commit {
		return &Commit{
			treeHash:   t.First.First,
			parentHash: t.First.Second,
			author:     t.Second.First,
			committer:  t.Second.Second,
			message:    string(t.Third),
		}
	},
)

// ParseCommit decodes a commit payload.
func ParseCommit(content []byte) (*Commit, error) {
	_, commit, err := commitParser(content)
	if err != nil {
		return nil, fmt.Errorf("%w: commit: %w", ErrMalformedObject, err)
	}
	return commit, nil
}
