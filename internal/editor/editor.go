// Package editor hands a buffer to the user's $EDITOR and reads it back.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrUnchanged is returned by Edit when the file was saved as-is.
var ErrUnchanged = errors.New("no changes")

func editorCmd() []string {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if f := strings.Fields(os.Getenv(key)); len(f) > 0 {
			return f
		}
	}
	return []string{"vi"}
}

func Open(filepath string) error {
	argv := append(editorCmd(), filepath)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", argv[0], err)
	}
	return nil
}

// Edit writes initial to a temp file named with pattern, opens it and
// returns what the user saved.
func Edit(initial []byte, pattern string) ([]byte, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(initial); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	if err := Open(path); err != nil {
		return nil, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edited file: %w", err)
	}
	if bytes.Equal(out, initial) {
		return out, ErrUnchanged
	}
	return out, nil
}
