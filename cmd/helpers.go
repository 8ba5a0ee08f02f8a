package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isInteractive reports whether both the input and the status stream are
// terminals. Prompts are only shown when a person can answer them.
func isInteractive(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok {
		return false
	}

	outFile, ok := out.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd()))
}

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Delete this profile? [y/N]: ")
func promptConfirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)

	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.TrimSpace(line)

	return answer == "y" || answer == "Y"
}

// readSecret reads a secret without echo when in is a terminal, otherwise a
// single line.
func readSecret(in io.Reader, out io.Writer, prompt string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(out, prompt)

		secret, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read key: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// commandContext returns the command's context, falling back to Background
// when the command is invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// printEmptyResult prints a "no results" message with a create hint
func printEmptyResult(w io.Writer, resourceType, createCmd string) {
	_, _ = fmt.Fprintf(w, "No %s configured.\n", resourceType)
	_, _ = fmt.Fprintf(w, "Create one with: %s\n", createCmd)
}

func outputJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(data)
}

// formatTime renders t as RFC3339, or "never" for the zero time
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	return t.Format(time.RFC3339)
}
