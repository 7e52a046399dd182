package matrix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// encodeElement re-encodes one JSON value the way JSON.stringify prints the
// result of JSON.parse on it:
//   - no insignificant whitespace
//   - numbers in ECMAScript shortest form (1.0 -> 1, 1e2 -> 100, -0 -> 0),
//     values beyond float64 range become null
//   - strings without HTML escaping and with U+2028/U+2029 left literal
//   - unpaired surrogate escapes kept as lowercase \u escapes
//   - object keys that are array indices first in ascending numeric order,
//     then the rest in source order; a repeated key keeps its first position
//     and its last value
func encodeElement(raw []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	e := &elementEncoder{raw: raw, dec: dec}

	var buf bytes.Buffer
	if err := e.writeValue(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// elementEncoder walks the tokens of raw. It keeps raw so string tokens can
// be re-read from their source literal.
type elementEncoder struct {
	raw []byte
	dec *json.Decoder
}

func (e *elementEncoder) writeValue(buf *bytes.Buffer) error {
	dec := e.dec
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '[':
			return e.writeArray(buf)
		case '{':
			return e.writeObject(buf)
		default:
			return fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case string:
		s, err := e.stringLiteral(v)
		if err != nil {
			return err
		}
		buf.Write(s)
	case json.Number:
		buf.WriteString(formatNumber(v))
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case nil:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}
	return nil
}

func (e *elementEncoder) writeArray(buf *bytes.Buffer) error {
	dec := e.dec
	buf.WriteByte('[')
	for i := 0; dec.More(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := e.writeValue(buf); err != nil {
			return fmt.Errorf("array[%d]: %w", i, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	buf.WriteByte(']')
	return nil
}

type member struct {
	key     string // decoded, for index ordering
	literal []byte // encoded, as written out
	value   []byte
}

func (e *elementEncoder) writeObject(buf *bytes.Buffer) error {
	dec := e.dec
	var members []member
	index := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("object key is %T", tok)
		}
		literal, err := e.stringLiteral(key)
		if err != nil {
			return err
		}

		var value bytes.Buffer
		if err := e.writeValue(&value); err != nil {
			return fmt.Errorf("object[%q]: %w", key, err)
		}

		// Keys collide by their encoded form: distinct unpaired surrogates
		// decode to the same replacement character.
		if i, seen := index[string(literal)]; seen {
			members[i].value = value.Bytes()
			continue
		}
		index[string(literal)] = len(members)
		members = append(members, member{key: key, literal: literal, value: value.Bytes()})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	// Stable: non-index keys keep source order.
	slices.SortStableFunc(members, func(a, b member) int {
		ai, aok := arrayIndex(a.key)
		bi, bok := arrayIndex(b.key)
		switch {
		case aok && bok:
			return compareUint(ai, bi)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})

	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(m.literal)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return nil
}

// stringLiteral encodes the string token the decoder just returned. The
// decoded value is used unless its source literal holds a \u escape, in
// which case the literal is re-decoded so unpaired surrogates survive.
func (e *elementEncoder) stringLiteral(decoded string) ([]byte, error) {
	end := int(e.dec.InputOffset())
	start := literalStart(e.raw, end)
	if start < 0 || !bytes.Contains(e.raw[start:end], []byte(`\u`)) {
		return marshalString(decoded)
	}
	return encodeLiteral(e.raw[start+1 : end-1])
}

// literalStart returns the index of the opening quote of the string literal
// whose closing quote is at raw[end-1], or -1.
func literalStart(raw []byte, end int) int {
	for i := end - 2; i >= 0; i-- {
		if raw[i] != '"' {
			continue
		}
		slashes := 0
		for j := i - 1; j >= 0 && raw[j] == '\\'; j-- {
			slashes++
		}
		if slashes%2 == 0 {
			return i
		}
	}
	return -1
}

// encodeLiteral re-encodes the body of a valid JSON string literal. Text is
// encoded as marshalString does; a surrogate escape not forming a pair is
// written back as a lowercase \u escape.
func encodeLiteral(body []byte) ([]byte, error) {
	out := []byte{'"'}
	var text []byte
	flush := func() error {
		s, err := marshalString(string(text))
		if err != nil {
			return err
		}
		out = append(out, s[1:len(s)-1]...)
		text = text[:0]
		return nil
	}

	for i := 0; i < len(body); {
		if body[i] != '\\' {
			r, size := utf8.DecodeRune(body[i:])
			text = utf8.AppendRune(text, r)
			i += size
			continue
		}
		if body[i+1] != 'u' {
			text = append(text, unescape[body[i+1]])
			i += 2
			continue
		}

		r := hex4(body[i+2 : i+6])
		i += 6
		if !utf16.IsSurrogate(r) {
			text = utf8.AppendRune(text, r)
			continue
		}
		if r < 0xdc00 && i+6 <= len(body) && body[i] == '\\' && body[i+1] == 'u' {
			if lo := hex4(body[i+2 : i+6]); lo >= 0xdc00 && lo <= 0xdfff {
				text = utf8.AppendRune(text, utf16.DecodeRune(r, lo))
				i += 6
				continue
			}
		}
		if err := flush(); err != nil {
			return nil, err
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return append(out, '"'), nil
}

// unescape maps the character after a backslash to the byte it stands for.
var unescape = [256]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// hex4 parses four hex digits already checked by the JSON decoder.
func hex4(b []byte) rune {
	var r rune
	for _, c := range b {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		}
	}
	return r
}

// arrayIndex reports whether key is a canonical array index: decimal
// digits without leading zeros, below 2^32-1.
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n >= math.MaxUint32 {
		return 0, false
	}
	return n, true
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// formatNumber prints a JSON number literal in ECMAScript Number::toString
// form. encoding/json already formats float64 that way, except for -0.
func formatNumber(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	switch {
	case math.IsInf(f, 0):
		return "null"
	case f == 0:
		return "0"
	case err != nil:
		return string(n)
	}
	b, err := json.Marshal(f)
	if err != nil {
		return string(n)
	}
	return string(b)
}

// marshalString produces a JSON string literal without HTML escaping.
// encoding/json always escapes U+2028 and U+2029; those are turned back
// into literal characters.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline, remove it
	result := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
	return unescapeLineSeparators(result), nil
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes with the literal
// characters. Escape sequences are consumed pairwise, so an escaped
// backslash followed by "u2028" text is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' && string(data[i+2:i+5]) == "202" {
			switch data[i+5] {
			case '8':
				out = append(out, "\u2028"...)
				i += 5
				continue
			case '9':
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}
