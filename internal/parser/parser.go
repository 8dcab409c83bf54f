// Package parser provides small composable parsers over byte slices.
//
// A Parser consumes a prefix of its input and returns the remaining input
// together with the parsed value. On failure it returns an *Error holding the
// input it was given, so callers can report where parsing stopped.
package parser

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrNoMatch is wrapped by every failure that is not caused by a domain error.
var ErrNoMatch = errors.New("no match")

// maxQuoted bounds how much of the remaining input Error.Error prints.
const maxQuoted = 32

// Error is returned by a failing parser. Input is the unconsumed input at the
// point of failure.
type Error struct {
	Input []byte
	Err   error
}

func (e *Error) Error() string {
	input := e.Input
	suffix := ""
	if len(input) > maxQuoted {
		input = input[:maxQuoted]
		suffix = "..."
	}
	return fmt.Sprintf("%v at %q%s", e.Err, input, suffix)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Parser parses a prefix of input into a T.
type Parser[T any] func(input []byte) (rest []byte, value T, err error)

// Pair holds the results of Seq2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple holds the results of Seq3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func fail[T any](input []byte, format string, args ...any) ([]byte, T, error) {
	var zero T
	return input, zero, &Error{Input: input, Err: fmt.Errorf("%w: "+format, append([]any{ErrNoMatch}, args...)...)}
}

// Byte matches the single literal byte b.
func Byte(b byte) Parser[byte] {
	return func(input []byte) ([]byte, byte, error) {
		if len(input) == 0 || input[0] != b {
			return fail[byte](input, "expected %q", b)
		}
		return input[1:], b, nil
	}
}

// Tag matches the literal sequence lit.
func Tag(lit []byte) Parser[[]byte] {
	return func(input []byte) ([]byte, []byte, error) {
		if !bytes.HasPrefix(input, lit) {
			return fail[[]byte](input, "expected %q", lit)
		}
		return input[len(lit):], input[:len(lit)], nil
	}
}

// Take consumes exactly n bytes.
func Take(n int) Parser[[]byte] {
	return func(input []byte) ([]byte, []byte, error) {
		if n < 0 || len(input) < n {
			return fail[[]byte](input, "expected %d bytes, have %d", n, len(input))
		}
		return input[n:], input[:n], nil
	}
}

// Satisfy consumes one byte for which pred holds.
func Satisfy(pred func(byte) bool) Parser[byte] {
	return func(input []byte) ([]byte, byte, error) {
		if len(input) == 0 {
			return fail[byte](input, "unexpected end of input")
		}
		if !pred(input[0]) {
			return fail[byte](input, "unexpected byte %q", input[0])
		}
		return input[1:], input[0], nil
	}
}

// OneOrMore applies p until it fails and collects the results. It fails if p
// does not succeed at least once, or if p succeeds without consuming input.
func OneOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(input []byte) ([]byte, []T, error) {
		rest, first, err := p(input)
		if err != nil {
			return input, nil, err
		}
		values := []T{first}
		for len(rest) > 0 {
			next, value, err := p(rest)
			if err != nil || len(next) == len(rest) {
				break
			}
			values = append(values, value)
			rest = next
		}
		return rest, values, nil
	}
}

// Seq2 runs a then b.
func Seq2[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return func(input []byte) ([]byte, Pair[A, B], error) {
		var out Pair[A, B]
		rest, first, err := a(input)
		if err != nil {
			return input, out, err
		}
		rest, second, err := b(rest)
		if err != nil {
			return input, out, err
		}
		out.First, out.Second = first, second
		return rest, out, nil
	}
}

// Seq3 runs a, b then c.
func Seq3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Triple[A, B, C]] {
	return func(input []byte) ([]byte, Triple[A, B, C], error) {
		var out Triple[A, B, C]
		rest, ab, err := Seq2(a, b)(input)
		if err != nil {
			return input, out, err
		}
		rest, third, err := c(rest)
		if err != nil {
			return input, out, err
		}
		out.First, out.Second, out.Third = ab.First, ab.Second, third
		return rest, out, nil
	}
}

// Left runs a then b and keeps the result of a.
func Left[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Map(Seq2(a, b), func(p Pair[A, B]) A { return p.First })
}

// Right runs a then b and keeps the result of b.
func Right[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Map(Seq2(a, b), func(p Pair[A, B]) B { return p.Second })
}

// Map transforms the result of p.
func Map[A, B any](p Parser[A], fn func(A) B) Parser[B] {
	return func(input []byte) ([]byte, B, error) {
		rest, value, err := p(input)
		if err != nil {
			var zero B
			return input, zero, err
		}
		return rest, fn(value), nil
	}
}

// TryMap transforms the result of p with a function that may reject it. A
// rejection fails the parser at the original input and keeps fn's error in
// the chain.
func TryMap[A, B any](p Parser[A], fn func(A) (B, error)) Parser[B] {
	return func(input []byte) ([]byte, B, error) {
		var zero B
		rest, value, err := p(input)
		if err != nil {
			return input, zero, err
		}
		out, err := fn(value)
		if err != nil {
			return input, zero, &Error{Input: input, Err: err}
		}
		return rest, out, nil
	}
}

// AndThen runs p and builds the next parser from its result.
func AndThen[A, B any](p Parser[A], next func(A) Parser[B]) Parser[B] {
	return func(input []byte) ([]byte, B, error) {
		rest, value, err := p(input)
		if err != nil {
			var zero B
			return input, zero, err
		}
		rest, out, err := next(value)(rest)
		if err != nil {
			var zero B
			return input, zero, err
		}
		return rest, out, nil
	}
}

// Recognize runs p and returns the slice of input it consumed.
func Recognize[T any](p Parser[T]) Parser[[]byte] {
	return func(input []byte) ([]byte, []byte, error) {
		rest, _, err := p(input)
		if err != nil {
			return input, nil, err
		}
		return rest, input[:len(input)-len(rest)], nil
	}
}

// TakeWhile1 consumes one or more bytes satisfying pred.
func TakeWhile1(pred func(byte) bool) Parser[[]byte] {
	return Recognize(OneOrMore(Satisfy(pred)))
}

// Complete fails unless p consumes all of its input.
func Complete[T any](p Parser[T]) Parser[T] {
	return func(input []byte) ([]byte, T, error) {
		var zero T
		rest, value, err := p(input)
		if err != nil {
			return input, zero, err
		}
		if len(rest) > 0 {
			_, _, err := fail[T](rest, "%d trailing bytes", len(rest))
			return input, zero, err
		}
		return rest, value, nil
	}
}

// Optional runs p and yields fallback without consuming input when p fails.
func Optional[T any](p Parser[T], fallback T) Parser[T] {
	return func(input []byte) ([]byte, T, error) {
		rest, value, err := p(input)
		if err != nil {
			return input, fallback, nil
		}
		return rest, value, nil
	}
}

// Rest consumes all remaining input. It never fails.
var Rest Parser[[]byte] = func(input []byte) ([]byte, []byte, error) {
	return input[len(input):], input, nil
}

// Not returns a predicate matching every byte except b.
func Not(b byte) func(byte) bool {
	return func(c byte) bool { return c != b }
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
