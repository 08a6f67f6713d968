// Package cli provides the command-line interface for stockinfo
package cli

import (
	"errors"
	"fmt"
	"os"
)

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already displayed by a command.
func Reported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

// Run starts the CLI application
func Run() {
	rootCmd := NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		if !Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
