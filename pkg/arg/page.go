package arg

import (
	"io"

	"github.com/aleksandradimitrov/wikipedia-task/internal/tui/prompt"
)

// HandlePage returns the page named on the command line, or asks for one
// when no argument was given.
func HandlePage(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return prompt.Read(in, out, prompt.Label)
}
