package mapping

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/bindgen/errors"
)

// Charset is the character encoding of a char mapping.
type Charset uint8

const (
	CharsetNone Charset = iota
	CharsetASCII
	CharsetUTF8
	CharsetUTF16
)

var charsetNames = [...]string{
	CharsetNone:  "",
	CharsetASCII: "ASCII",
	CharsetUTF8:  "UTF8",
	CharsetUTF16: "UTF16",
}

func (c Charset) String() string {
	if int(c) < len(charsetNames) {
		return charsetNames[c]
	}
	return "unknown"
}

// Bytes returns the size of one code unit.
func (c Charset) Bytes() int {
	switch c {
	case CharsetASCII, CharsetUTF8:
		return 1
	case CharsetUTF16:
		return 2
	default:
		return 0
	}
}

// Encoding returns the text encoding used for c. UTF-16 is little endian
// without a byte order mark, matching what native wide-char APIs expect.
func (c Charset) Encoding() (encoding.Encoding, bool) {
	switch c {
	case CharsetASCII:
		return charmap.ISO8859_1, true
	case CharsetUTF8:
		return unicode.UTF8, true
	case CharsetUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), true
	default:
		return nil, false
	}
}

// Encode encodes s in c, optionally appending a null terminator of one
// code unit.
func (c Charset) Encode(s string, nullTerminated bool) ([]byte, error) {
	enc, ok := c.Encoding()
	if !ok {
		return nil, errors.Unsupported(errors.PhaseEmit, fmt.Sprintf("charset %q has no encoding", c.String()))
	}
	if !utf8.ValidString(s) {
		return nil, errors.New(errors.PhaseEmit, errors.KindInvalidInput).
			Value(s).
			Detail("%s constant is not valid UTF-8", c.String()).
			Build()
	}
	if c == CharsetASCII {
		for i, r := range s {
			if r > 0x7F {
				return nil, errors.New(errors.PhaseEmit, errors.KindInvalidInput).
					Value(r).
					Detail("non-ASCII rune %q at offset %d", r, i).
					Build()
			}
		}
	}

	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEmit, errors.KindInvalidInput, err, "encode "+c.String())
	}
	if nullTerminated {
		out = append(out, make([]byte, c.Bytes())...)
	}
	return out, nil
}

// EncodedLen returns the number of bytes Encode would produce.
func (c Charset) EncodedLen(s string, nullTerminated bool) (int, error) {
	b, err := c.Encode(s, nullTerminated)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}
