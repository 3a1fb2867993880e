package commandx

import (
	"fmt"

	"github.com/Abraxas-365/reactx/pkg/errx"
)

var commandxErrors = errx.NewRegistry("COMMANDX")

var (
	ErrCommandDisabled        = commandxErrors.Register("DISABLED", errx.TypeUnavailable, 503, "Command is disabled")
	ErrInvalidExecutionResult = commandxErrors.Register("INVALID_EXECUTION_RESULT", errx.TypeValidation, 400, "Action did not produce a valid execution stream")
	ErrUnknownCommand         = commandxErrors.Register("UNKNOWN_COMMAND", errx.TypeNotFound, 404, "Command not found")
)

// disabledError is returned by Execute when the command does not accept new
// executions.
func disabledError(name string) error {
	return commandxErrors.New(ErrCommandDisabled).WithDetail("command", name)
}

// invalidResultError reports an action that failed to produce a stream.
// cause may be nil when the action returned a nil stream.
func invalidResultError(name string, input any, cause error) error {
	var err *errx.Error
	if cause != nil {
		err = commandxErrors.NewWithCause(ErrInvalidExecutionResult, cause)
	} else {
		err = commandxErrors.New(ErrInvalidExecutionResult)
	}
	return err.WithDetail("command", name).WithDetail("input", input)
}

// UnknownCommand builds the error returned by lookups of unregistered commands.
func UnknownCommand(name string) error {
	return commandxErrors.NewWithMessage(ErrUnknownCommand, fmt.Sprintf("command %q not found", name)).
		WithDetail("command", name)
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
