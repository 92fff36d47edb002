package cmd

import (
	"errors"
	"fmt"
	"io"

	"tarediiran-industries.com/bus-eta-services/internal/session"
)

func printMessage(out io.Writer, message *session.Message) {
	if message == nil {
		return
	}
	fmt.Fprintf(out, "[%s] %s\n", message.Kind, message.Text)
}

func printResults(out io.Writer, results *session.Results) {
	if results == nil {
		return
	}
	if details := results.Details; details != nil {
		fmt.Fprintln(out, details.Title)
		fmt.Fprintln(out, details.Position)
		fmt.Fprintln(out, details.GPSTime)
	}
	for _, line := range results.Lines {
		fmt.Fprintln(out, line)
	}
}

// failure turns an error message into a non-zero exit. Cobra prints it once
// more on stderr.
func failure(message *session.Message) error {
	if message != nil && message.Kind == session.MessageError {
		return errors.New(message.Text)
	}
	return nil
}
