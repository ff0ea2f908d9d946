// Package input decides which of the mutually exclusive input sources
// is active for an invocation and extracts its text.
package input

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"

	"github.com/MimeLyc/deepl-cli/internal/clierr"
	"github.com/MimeLyc/deepl-cli/internal/clipboard"
	"github.com/MimeLyc/deepl-cli/pkg/log"
)

// Source identifies where resolved text came from.
type Source int

const (
	SourceArgument Source = iota
	SourceFile
	SourceStdin
	SourceClipboard
)

func (s Source) String() string {
	switch s {
	case SourceArgument:
		return "argument"
	case SourceFile:
		return "file"
	case SourceStdin:
		return "stdin"
	case SourceClipboard:
		return "clipboard"
	default:
		return "unknown"
	}
}

// Request describes the input-related arguments of one invocation.
// Text is the positional input token: literal text, a file path, or
// the "-" stdin sentinel.
type Request struct {
	Text      string
	Stdin     bool
	Clipboard bool
}

// Resolved is the outcome of input resolution. Content is never empty
// after trimming. Path is set only for file input.
type Resolved struct {
	Content string
	Origin  Source
	Path    string
}

const clipboardRemedy = "Clipboard support not available. Install xclip or xsel (Linux) or use another input source."

// Resolver reads the input sources. The zero value is not usable; use
// New for production wiring.
type Resolver struct {
	Stdin      io.Reader
	IsTerminal func() bool
	Clipboard  clipboard.Board
	Prompt     io.Writer
}

// New returns a Resolver wired to the process stdin and the system
// clipboard.
func New() *Resolver {
	return &Resolver{
		Stdin: os.Stdin,
		IsTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		Clipboard: clipboard.System(),
		Prompt:    os.Stderr,
	}
}

// Resolve picks exactly one input source following the priority order:
// clipboard, explicit stdin (--stdin or "-"), auto-detected pipe,
// positional file path or literal text. The first matching rule wins.
func (r *Resolver) Resolve(req Request) (Resolved, error) {
	if req.Clipboard && (req.Stdin || req.Text == "-") {
		return Resolved{}, clierr.New(clierr.Configuration,
			"Cannot use --clipboard with --stdin or '-' simultaneously")
	}

	// 1. Clipboard.
	if req.Clipboard {
		return r.readClipboard()
	}

	// 2. Explicit stdin via flag or dash sentinel. Empty input is a
	// hard failure here.
	if req.Stdin || req.Text == "-" {
		if r.IsTerminal() {
			fmt.Fprintln(r.Prompt, "Reading from stdin. Type your text and press Ctrl+D to finish:")
		}
		text, err := r.readStdin()
		if err != nil {
			return Resolved{}, err
		}
		if strings.TrimSpace(text) == "" {
			return Resolved{}, clierr.New(clierr.Input, "No input received from stdin")
		}
		log.Debug("Read %d characters from stdin", len(text))
		return Resolved{Content: text, Origin: SourceStdin}, nil
	}

	// 3. Auto-detected pipe or redirect. An empty pipe falls through
	// to the positional rules instead of failing, unlike rule 2.
	if !r.IsTerminal() && req.Text == "" {
		text, err := r.readStdin()
		if err != nil {
			return Resolved{}, err
		}
		if strings.TrimSpace(text) != "" {
			log.Debug("Auto-detected stdin input: %d characters", len(text))
			return Resolved{Content: text, Origin: SourceStdin}, nil
		}
	}

	// 4. Positional token: existing regular file, otherwise literal text.
	if req.Text != "" {
		if info, err := os.Stat(req.Text); err == nil && info.Mode().IsRegular() {
			return readFile(req.Text)
		}
		log.Debug("Using direct text input: %d characters", len(req.Text))
		return Resolved{Content: req.Text, Origin: SourceArgument}, nil
	}

	return Resolved{}, clierr.New(clierr.Input,
		"No input provided. Use one of:\n"+
			"  - Provide text directly: deepl JA \"Hello, world!\"\n"+
			"  - Provide an input file path: deepl JA input.txt\n"+
			"  - Pipe to stdin: echo 'text' | deepl JA\n"+
			"  - Use stdin explicitly: deepl JA --stdin\n"+
			"  - Use stdin with dash: deepl JA -\n"+
			"  - Use --clipboard for clipboard input\n"+
			"  - Use --help for more information")
}

func (r *Resolver) readClipboard() (Resolved, error) {
	if r.Clipboard == nil || !r.Clipboard.Available() {
		return Resolved{}, clierr.New(clierr.Input, clipboardRemedy)
	}
	text, err := r.Clipboard.Read()
	if err != nil {
		return Resolved{}, clierr.Wrap(clierr.Input, err, "Failed to read from clipboard: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		return Resolved{}, clierr.New(clierr.Input,
			"Clipboard is empty. Copy some text to translate and try again.")
	}
	log.Debug("Read %d characters from clipboard", len(text))
	return Resolved{Content: text, Origin: SourceClipboard}, nil
}

func (r *Resolver) readStdin() (string, error) {
	data, err := io.ReadAll(r.Stdin)
	if err != nil {
		return "", clierr.Wrap(clierr.Input, err, "Failed to read stdin: %v", err)
	}
	return string(data), nil
}

func readFile(path string) (Resolved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return Resolved{}, clierr.Wrap(clierr.Input, err, "Permission denied reading file: %s", path)
		}
		return Resolved{}, clierr.Wrap(clierr.Input, err, "Failed to read file %s: %v", path, err)
	}
	if !utf8.Valid(data) {
		return Resolved{}, clierr.New(clierr.Input,
			"Unable to decode file as UTF-8: %s (save the file with UTF-8 encoding)", path)
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return Resolved{}, clierr.New(clierr.Input, "Input file is empty: %s", path)
	}
	log.Debug("Read %d characters from file %s", len(content), path)
	return Resolved{Content: content, Origin: SourceFile, Path: path}, nil
}
