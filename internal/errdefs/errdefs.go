package errdefs

import "fmt"

type ErrorType int

const (
	ErrTypeStartup ErrorType = iota
	ErrTypePrecondition
	ErrTypeSubprocess
	ErrTypeInput
	ErrTypeNotLinux
	ErrTypeGeneric
)

type CustomError struct {
	Type    ErrorType
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

// SubprocessError carries the exit code of a failed entry point so callers
// can report it without parsing the message.
type SubprocessError struct {
	Name     string
	ExitCode int
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.ExitCode)
}

var ErrRetryLimitExceeded = NewCustomError(ErrTypeInput, "too many invalid selections")
