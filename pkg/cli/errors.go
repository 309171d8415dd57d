package cli

import "fmt"

// ConfigError reports a problem with the configuration a command loaded.
type ConfigError struct {
	// Path is the config file involved, empty when built-in defaults were
	// in effect.
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CommandError wraps a command failure with the command name and, when the
// command targets a single interpretation, that interpretation's name.
type CommandError struct {
	Command        string
	Interpretation string
	Err            error
}

func (e *CommandError) Error() string {
	if e.Interpretation != "" {
		return fmt.Sprintf("%s %q: %v", e.Command, e.Interpretation, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError for the given config file.
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

// NewCommandError creates a CommandError with no interpretation context.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// NewInterpretationError creates a CommandError naming the interpretation
// the command was evaluating.
func NewInterpretationError(command, interpretation string, err error) *CommandError {
	return &CommandError{Command: command, Interpretation: interpretation, Err: err}
}
