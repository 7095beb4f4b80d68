package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompt prints label and reads one line from the command's input.
//
//nolint:errcheck // CLI helper, error ignored for UX
func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// promptSecret reads a line without echo when the input is a terminal.
func promptSecret(cmd *cobra.Command, reader *bufio.Reader, label string) string {
	cmd.Print(label)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err == nil {
			return string(secret)
		}
	}
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func newReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// maskSecret keeps the first and last four characters of long secrets.
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
