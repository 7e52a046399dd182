// Package lines splits a UTF-8 text stream into lines.
//
// Input is decoded with golang.org/x/text: a leading byte order mark is
// dropped and ill-formed byte sequences become U+FFFD. A line ends at "\n",
// "\r\n" or a bare "\r". There is no line length limit.
package lines

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// Reader yields the lines of an io.Reader one at a time.
type Reader struct {
	src   io.Reader
	br    *bufio.Reader
	line  []byte
	err   error
	count int
}

// NewReader returns a Reader over r. Nothing is read from r until the first
// call to Next.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// open strips a byte order mark and sets up decoding. The mark is checked
// here rather than by a BOM-aware decoder, which drops bytes it is still
// holding when the source fails before three bytes arrive.
func (r *Reader) open() {
	raw := bufio.NewReader(r.src)
	head, err := raw.Peek(len(bom))

	var src io.Reader = raw
	switch {
	case bytes.Equal(head, bom):
		raw.Discard(len(bom))
	case err != nil:
		// Peek hands the error over exactly once; replay it after the
		// bytes it saw.
		src = io.MultiReader(bytes.NewReader(bytes.Clone(head)), errReader{err})
	}

	decoded := transform.NewReader(src, unicode.UTF8.NewDecoder())
	r.br = bufio.NewReader(decoded)
}

// Next returns the next line without its terminator. It returns io.EOF once
// the input is exhausted. A final line with no terminator is still returned;
// a terminator at the very end does not produce an extra empty line.
func (r *Reader) Next() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.br == nil {
		r.open()
	}

	r.line = r.line[:0]
	for {
		c, err := r.br.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = err
				return "", err
			}
			r.err = io.EOF
			if len(r.line) == 0 {
				return "", io.EOF
			}
			break
		}
		if c == '\n' {
			break
		}
		if c == '\r' {
			// "\r\n" is a single terminator, even when split across reads.
			if next, err := r.br.Peek(1); err == nil && next[0] == '\n' {
				r.br.Discard(1)
			}
			break
		}
		r.line = append(r.line, c)
	}

	r.count++
	return string(r.line), nil
}

// All returns the remaining lines as a sequence. The sequence stops at end of
// input or at the first read error; check Err afterwards. Like the Reader
// itself, it can be consumed only once.
func (r *Reader) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := r.Next()
			if err != nil {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Err returns the first read error other than io.EOF.
func (r *Reader) Err() error {
	if errors.Is(r.err, io.EOF) {
		return nil
	}
	return r.err
}

// Count returns the number of lines returned so far.
func (r *Reader) Count() int {
	return r.count
}

type errReader struct {
	err error
}

func (e errReader) Read([]byte) (int, error) {
	return 0, e.err
}
