package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by the rustalize command.
const (
	ExitOK       = 0
	ExitFindings = 1 // lint or index found invalid declarations
	ExitError    = 2 // usage, configuration, or I/O failure
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
	Code    int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a CommandError that exits with ExitError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
		Code:    ExitError,
	}
}

// NewFindingsError creates a CommandError for a run that completed but found
// invalid declarations. It exits with ExitFindings.
func NewFindingsError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
		Code:    ExitFindings,
	}
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code != 0 {
		return cmdErr.Code
	}
	return ExitError
}
