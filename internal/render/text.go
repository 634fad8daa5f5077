// Package render turns server replies into styled terminal text.
//
// Every renderer is a plain function of the reply, the raw-mode option and the style
// tokens. The only side effect is the key-name feedback performed by CommandKeys.
package render

import "kvshell/internal/style"

// Span is one run of text drawn with a single style. A zero Token means unstyled.
type Span struct {
	Token style.Token
	Text  string
}

// Text is an ordered sequence of spans, in on-screen order.
type Text []Span

// String returns the visible text without styling.
func (t Text) String() string {
	n := 0
	for _, s := range t {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range t {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// ResultKind identifies which field of a Result carries the rendered output.
type ResultKind int

const (
	// ResultText carries styled spans.
	ResultText ResultKind = iota
	// ResultRaw carries bytes to be written unmodified.
	ResultRaw
	// ResultInteger carries an integer whose formatting is left to the writer.
	ResultInteger
)

// Result is the output of a renderer.
type Result struct {
	Kind    ResultKind
	Text    Text
	Raw     []byte
	Integer int64
}

// TextResult wraps styled text.
func TextResult(text Text) Result {
	return Result{Kind: ResultText, Text: text}
}

// RawResult wraps raw bytes.
func RawResult(raw []byte) Result {
	if raw == nil {
		raw = []byte{}
	}
	return Result{Kind: ResultRaw, Raw: raw}
}

// IntegerResult wraps an integer value.
func IntegerResult(value int64) Result {
	return Result{Kind: ResultInteger, Integer: value}
}

// Options is read once per render call.
type Options struct {
	// Raw bypasses styling and index labels; lists are emitted as newline-joined bytes.
	Raw bool
}
