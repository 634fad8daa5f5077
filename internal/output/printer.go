// Package output writes rendered replies to the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"kvshell/internal/render"
)

// Printer writes render results to a writer. Styled text is drawn through each span's
// token, raw bytes are written unmodified and integers are formatted here.
type Printer struct {
	writer io.Writer
	raw    bool
	plain  bool
	silent bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes styled output to os.Stdout.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Write outputs one render result. Text and integer results end with a newline; raw
// results are written exactly as given, with no newline added.
func (p *Printer) Write(result render.Result) error {
	if p.silent {
		return nil
	}

	var out []byte
	switch result.Kind {
	case render.ResultRaw:
		out = result.Raw
	case render.ResultInteger:
		if !p.raw {
			out = append(out, "(integer) "...)
		}
		out = strconv.AppendInt(out, result.Integer, 10)
		out = append(out, '\n')
	default:
		for _, span := range result.Text {
			if p.raw || p.plain {
				out = append(out, span.Text...)
			} else {
				out = append(out, span.Token.Render(span.Text)...)
			}
		}
		out = append(out, '\n')
	}

	return p.write(out)
}

// Newline terminates the current line, e.g. after a raw result in an interactive
// session.
func (p *Printer) Newline() error {
	if p.silent {
		return nil
	}
	return p.write([]byte{'\n'})
}

// WriteError outputs a client-side failure (not a server error reply) as plain text.
func (p *Printer) WriteError(err error) error {
	if p.silent {
		return nil
	}
	return p.write([]byte("(error) " + err.Error() + "\n"))
}

func (p *Printer) write(out []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.writer.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// IsRaw reports whether the printer emits scripting-safe output.
func (p *Printer) IsRaw() bool {
	return p.raw
}

// String returns a string representation for debugging.
func (p *Printer) String() string {
	return fmt.Sprintf("Printer{raw: %t, plain: %t, writer: %T}", p.raw, p.plain, p.writer)
}
