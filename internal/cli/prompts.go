package cli

import (
	"bufio"
	"io"
	"strings"
)

// confirm asks a y/N question and returns whether the user agreed.
// Anything other than "y" or "yes" (case-insensitive) declines.
func confirm(r io.Reader, w io.Writer, prompt string) bool {
	out(w, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
