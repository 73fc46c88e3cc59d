package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// arraySpan describes where an array value sits in a manifest's raw bytes.
type arraySpan struct {
	open    int // index of '['
	close   int // index of the matching ']'
	lastSig int // last non-blank, non-comment byte inside the array, or open when empty
}

// offsetOf converts a 1-based line and rune column into a byte offset.
func offsetOf(src []byte, line, col int) (int, error) {
	off := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(src[off:], '\n')
		if i < 0 {
			return 0, fmt.Errorf("line %d out of range", line)
		}
		off += i + 1
	}
	for c := 1; c < col; c++ {
		if off >= len(src) || src[off] == '\n' {
			return 0, fmt.Errorf("column %d out of range on line %d", col, line)
		}
		_, size := utf8.DecodeRune(src[off:])
		off += size
	}
	return off, nil
}

// findArray scans from the start of a key to the array assigned to it.
func findArray(src []byte, keyStart int) (arraySpan, error) {
	i := keyStart
	for i < len(src) && src[i] != '=' {
		switch src[i] {
		case '"', '\'':
			end, err := skipString(src, i)
			if err != nil {
				return arraySpan{}, err
			}
			i = end
			continue
		case '\n':
			return arraySpan{}, errors.New("key has no value")
		}
		i++
	}
	if i >= len(src) {
		return arraySpan{}, errors.New("key has no value")
	}
	i++
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	if i >= len(src) || src[i] != '[' {
		return arraySpan{}, ErrMembersNotArray
	}

	span := arraySpan{open: i, lastSig: i}
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '"', '\'':
			end, err := skipString(src, i)
			if err != nil {
				return arraySpan{}, err
			}
			span.lastSig = end - 1
			i = end
			continue
		case '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			continue
		case '[', '{':
			depth++
			if i != span.open {
				span.lastSig = i
			}
		case ']', '}':
			depth--
			if depth == 0 {
				span.close = i
				return span, nil
			}
			span.lastSig = i
		case ' ', '\t', '\r', '\n':
		default:
			span.lastSig = i
		}
		i++
	}
	return arraySpan{}, errors.New("unterminated array")
}

// skipString returns the index just past the string literal starting at i.
func skipString(src []byte, i int) (int, error) {
	q := src[i]
	if bytes.HasPrefix(src[i:], []byte{q, q, q}) {
		delim := []byte{q, q, q}
		j := i + 3
		for j < len(src) {
			if q == '"' && src[j] == '\\' {
				j += 2
				continue
			}
			if bytes.HasPrefix(src[j:], delim) {
				j += 3
				// Up to two extra quotes may close a multi-line string.
				for k := 0; k < 2 && j < len(src) && src[j] == q; k++ {
					j++
				}
				return j, nil
			}
			j++
		}
		return 0, errors.New("unterminated multi-line string")
	}
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			if q == '"' {
				j += 2
				continue
			}
		case q:
			return j + 1, nil
		case '\n':
			return 0, errors.New("unterminated string")
		}
		j++
	}
	return 0, errors.New("unterminated string")
}

// appendItem returns a copy of src with item appended to the array, matching
// the array's layout: same-line arrays get ", item", multi-line arrays get
// the item on its own line with the previous entry's indentation. A trailing
// comma is kept when the array already uses one.
func (a arraySpan) appendItem(src []byte, item string) []byte {
	var b bytes.Buffer
	b.Grow(len(src) + len(item) + 8)

	if a.lastSig == a.open {
		b.Write(src[:a.open+1])
		b.WriteString(item)
		b.Write(src[a.open+1:])
		return b.Bytes()
	}

	trailingComma := src[a.lastSig] == ','
	lineStart := bytes.LastIndexByte(src[:a.lastSig], '\n') + 1
	multiline := lineStart > a.open

	if !multiline {
		b.Write(src[:a.lastSig+1])
		if trailingComma {
			b.WriteString(" " + item + ",")
		} else {
			b.WriteString(", " + item)
		}
		b.Write(src[a.lastSig+1:])
		return b.Bytes()
	}

	newline := "\n"
	if bytes.Contains(src, []byte("\r\n")) {
		newline = "\r\n"
	}
	indent := leadingBlank(src[lineStart:a.lastSig])
	// Insert after anything trailing the last entry on its line (e.g. a comment).
	at := a.lastSig + 1
	if nl := bytes.IndexByte(src[at:a.close], '\n'); nl >= 0 {
		at += nl
		if at > 0 && src[at-1] == '\r' {
			at--
		}
	} else {
		at = a.close
		if !trailingComma {
			at = a.lastSig + 1
		}
	}

	b.Write(src[:a.lastSig+1])
	if !trailingComma {
		b.WriteByte(',')
	}
	b.Write(src[a.lastSig+1 : at])
	b.WriteString(newline + indent + item)
	if trailingComma {
		b.WriteByte(',')
	}
	b.Write(src[at:])
	return b.Bytes()
}

func leadingBlank(line []byte) string {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return string(line[:n])
}

// Quote renders s as a TOML basic string.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
