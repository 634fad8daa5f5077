// Package normalize converts raw reply payloads into printable text.
// The escaped form is meant to be displayed between double quotes; callers add the quotes.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"kvshell/internal/logger"
)

const hexDigits = "0123456789abcdef"

// DecodeError reports a payload that is not valid UTF-8 and therefore has no printable
// text form. Offset is the index of the first invalid byte.
type DecodeError struct {
	Offset int
}

// Error implements the error interface for DecodeError.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Offset)
}

// Normalize returns the escaped text form of raw. Double quotes and backslashes are
// escaped, \n, \r and \t use their short escapes and every other non-printable byte is
// written as \xNN. Single quotes are never escaped.
//
// A payload that is not valid UTF-8 yields a *DecodeError. Use Display when a
// best-effort representation is acceptable.
func Normalize(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", &DecodeError{Offset: firstInvalid(raw)}
	}
	return Escape(raw), nil
}

// Display is Normalize with the fallback applied: bytes that do not form valid UTF-8
// are written as \xNN escapes, so the result always round-trips to raw.
func Display(raw []byte) string {
	text, err := Normalize(raw)
	if err != nil {
		logger.Debug("Payload is not printable text, using hex escapes", "error", err, "length", len(raw))
		return Escape(raw)
	}
	return text
}

// Strings applies Display to every payload.
func Strings(raw [][]byte) []string {
	out := make([]string, len(raw))
	for i, item := range raw {
		out[i] = Display(item)
	}
	return out
}

// Escape never fails. Invalid UTF-8 bytes are escaped individually as \xNN.
func Escape(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			writeHex(&b, raw[i])
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsPrint(r):
			b.Write(raw[i : i+size])
		default:
			for _, c := range raw[i : i+size] {
				writeHex(&b, c)
			}
		}
		i += size
	}

	return b.String()
}

func writeHex(b *strings.Builder, c byte) {
	b.WriteString(`\x`)
	b.WriteByte(hexDigits[c>>4])
	b.WriteByte(hexDigits[c&0x0f])
}

func firstInvalid(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(raw)
}
