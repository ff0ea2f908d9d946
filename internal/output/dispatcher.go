// Package output delivers translated text to exactly one sink:
// clipboard, file, or stdout.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/internal/clipboard"
)

// Sink selects the destination. Clipboard outranks Path; when neither
// is set the text goes to stdout.
type Sink struct {
	Clipboard bool
	Path      string
}

// Name describes the active sink for history records.
func (s Sink) Name() string {
	switch {
	case s.Clipboard:
		return "clipboard"
	case s.Path != "":
		return "file"
	default:
		return "stdout"
	}
}

// Dispatcher writes translation results. Confirmation messages go to
// Stderr so Stdout carries nothing but translated text.
type Dispatcher struct {
	Clipboard clipboard.Board
	Stdout    io.Writer
	Stderr    io.Writer
}

// New returns a Dispatcher wired to the process streams and the system
// clipboard.
func New() *Dispatcher {
	return &Dispatcher{
		Clipboard: clipboard.System(),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Deliver writes text to the selected sink.
func (d *Dispatcher) Deliver(text string, sink Sink) error {
	if sink.Clipboard {
		if d.Clipboard == nil || !d.Clipboard.Available() {
			return clierr.New(clierr.Output,
				"Clipboard support not available. Install xclip or xsel (Linux) or use -o/--output instead.")
		}
		if err := d.Clipboard.Write(text); err != nil {
			return clierr.Wrap(clierr.Output, err, "Failed to copy translation to clipboard: %v", err)
		}
		fmt.Fprintln(d.Stderr, "Translation copied to clipboard")
		return nil
	}

	if sink.Path != "" {
		if dir := filepath.Dir(sink.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return clierr.Wrap(clierr.Output, err, "Failed to create output directory: %v", err)
			}
		}
		if err := os.WriteFile(sink.Path, []byte(text), 0o644); err != nil {
			if os.IsPermission(err) {
				return clierr.Wrap(clierr.Output, err, "Permission denied writing file: %s", sink.Path)
			}
			return clierr.Wrap(clierr.Output, err, "Failed to write output file %s: %v", sink.Path, err)
		}
		fmt.Fprintf(d.Stderr, "Translation saved to: %s\n", sink.Path)
		return nil
	}

	_, err := fmt.Fprintln(d.Stdout, text)
	if err != nil {
		return clierr.Wrap(clierr.Output, err, "Failed to write to stdout: %v", err)
	}
	return nil
}
