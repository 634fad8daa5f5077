package output

import "io"

// Option is a functional option for configuring Printer instances.
type Option func(*Printer)

// WithWriter configures the printer to write output to the specified writer.
// Default is os.Stdout if not specified.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// Raw configures scripting-safe output: no styling and bare integers.
func Raw(enabled bool) Option {
	return func(p *Printer) {
		p.raw = enabled
	}
}

// PlainText drops styling but keeps the human-readable layout.
func PlainText() Option {
	return func(p *Printer) {
		p.plain = true
	}
}

// Silent configures the printer to suppress all output.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}
