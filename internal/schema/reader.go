// Package schema reads SDL from a file or from standard input.
package schema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the source name that selects standard input
const Stdin = "-"

// ErrEmpty is returned when the source has no SDL in it
var ErrEmpty = errors.New("SDL is empty")

// Reader reads schema text. Stdin is injected so tests can substitute it.
type Reader struct {
	Stdin io.Reader
}

// NewReader returns a Reader that reads "-" from stdin.
func NewReader(stdin io.Reader) *Reader {
	return &Reader{Stdin: stdin}
}

// Read returns the SDL found at source, which is a file path or "-".
func (r *Reader) Read(source string) (string, error) {
	if source == "" {
		return "", errors.New("no schema source given: pass --schema <file> or --schema - to read stdin")
	}

	var (
		data []byte
		err  error
	)

	if source == Stdin {
		if r.Stdin == nil {
			return "", errors.New("stdin is not available")
		}

		data, err = io.ReadAll(r.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read SDL from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("failed to read SDL from %s: %w", source, err)
		}
	}

	sdl := string(data)
	if strings.TrimSpace(sdl) == "" {
		return "", ErrEmpty
	}

	return sdl, nil
}
