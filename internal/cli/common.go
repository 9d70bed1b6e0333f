package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// output receives spinners and timing reports of the image commands
var output io.Writer = os.Stdout

func MarkFlagsRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func NewSpinner() *spinner.Spinner {
	return spinner.New(spinner.CharSets[4], 100*time.Millisecond, spinner.WithWriter(output))
}

// setSpinnerPrefix changes the prefix of a spinner that may already be running
func setSpinnerPrefix(s *spinner.Spinner, prefix string) {
	s.Lock()
	s.Prefix = prefix
	s.Unlock()
}
