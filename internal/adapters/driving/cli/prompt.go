package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Interactive helpers shared by commands that prompt the user.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// confirm asks a yes/no question and defaults to no.
func confirm(reader *bufio.Reader, out io.Writer, question string) bool {
	_, _ = io.WriteString(out, question+" [y/N]: ")
	switch strings.ToLower(readLine(reader)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(bufio.NewReader(in))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isSecretKey reports whether a config key holds a credential.
func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key")
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
