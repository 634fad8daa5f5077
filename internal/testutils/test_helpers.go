// Package testutils provides shared fixtures for kvshell tests: an uncolored render
// pipeline and temporary files.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kvshell/internal/output"
	"kvshell/internal/render"
	"kvshell/internal/style"
)

// PlainDispatcher returns a dispatcher over the "plain" theme, whose styles carry no
// attributes, so rendered output can be compared as text.
func PlainDispatcher(t *testing.T, opts render.Options) *render.Dispatcher {
	t.Helper()
	resolver, err := style.Load("plain")
	require.NoError(t, err)
	dispatcher, err := render.NewDispatcher(resolver, opts)
	require.NoError(t, err)
	return dispatcher
}

// CapturePrinter returns a printer that writes unstyled output into the returned buffer.
func CapturePrinter(raw bool) (*output.Printer, *output.CaptureBuffer) {
	buffer := output.NewCaptureBuffer()
	printer := output.NewPrinter(output.WithWriter(buffer), output.Raw(raw), output.PlainText())
	return printer, buffer
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TempFile writes content to name inside a fresh temporary directory.
func TempFile(t *testing.T, name, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), name, content)
}
