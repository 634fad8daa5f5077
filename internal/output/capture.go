package output

import (
	"bytes"
	"strings"

	"kvshell/internal/render"
)

// CaptureBuffer is a buffer for capturing output during tests.
type CaptureBuffer struct {
	buf bytes.Buffer
}

// NewCaptureBuffer creates a new capture buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

// Write implements io.Writer for capturing output.
func (c *CaptureBuffer) Write(p []byte) (n int, err error) {
	return c.buf.Write(p)
}

// String returns the captured output as a string.
func (c *CaptureBuffer) String() string {
	return c.buf.String()
}

// Lines returns the captured output split into lines.
func (c *CaptureBuffer) Lines() []string {
	content := c.String()
	if content == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Reset clears the captured output.
func (c *CaptureBuffer) Reset() {
	c.buf.Reset()
}

// CaptureResult writes result with a printer built from options and returns what
// was written.
func CaptureResult(result render.Result, options ...Option) (string, error) {
	buffer := NewCaptureBuffer()
	printer := NewPrinter(append(options, WithWriter(buffer))...)
	err := printer.Write(result)
	return buffer.String(), err
}
