package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// terminal without echo.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetChoice keeps prompting until the answer is one of the allowed values.
// Returns the fallback on EOF.
func GetChoice(reader *bufio.Reader, prompt string, allowed []string, fallback string, w io.Writer) string {
	for {
		answer, err := GetSimpleText(reader, fmt.Sprintf("%s (%s)", prompt, strings.Join(allowed, "/")), w)
		if err != nil {
			return fallback
		}
		answer = strings.ToLower(answer)
		for _, a := range allowed {
			if answer == a {
				return answer
			}
		}
		fmt.Fprintln(w, "Please answer one of:", strings.Join(allowed, ", "))
	}
}
