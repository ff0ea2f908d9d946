// Package clipboard wraps the system clipboard behind a capability
// interface so the optional backend can be probed at the point of use
// and swapped in tests.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Board is a clipboard backend.
type Board interface {
	// Available reports whether clipboard operations can be expected
	// to work on this system.
	Available() bool
	Read() (string, error)
	Write(text string) error
}

type systemBoard struct{}

// System returns the operating system clipboard.
func System() Board {
	return systemBoard{}
}

func (systemBoard) Available() bool {
	if clipboard.Unsupported {
		return false
	}
	// Probe with a read: on X11 the backing xclip/xsel binary may be
	// missing even though the platform is supported.
	_, err := clipboard.ReadAll()
	return err == nil
}

func (systemBoard) Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	return text, nil
}

func (systemBoard) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
