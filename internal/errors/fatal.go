package errors

import (
	"errors"
	"fmt"
)

// fatalError is an error that is printed to the user as is, after which the
// program exits with a non-zero code.
type fatalError struct {
	msg string
	err error
}

func (e *fatalError) Error() string {
	return e.msg
}

func (e *fatalError) Unwrap() error {
	return e.err
}

// IsFatal returns true if err is a fatal message that should be printed to the
// user.
func IsFatal(err error) bool {
	var fatal *fatalError
	return errors.As(err, &fatal)
}

// Fatal returns an error that is marked fatal.
func Fatal(s string) error {
	return Wrap(&fatalError{msg: s}, "Fatal")
}

// Fatalf returns an error that is marked fatal. The last error in data, if
// any, stays reachable through errors.Is and errors.As.
func Fatalf(s string, data ...interface{}) error {
	var underlyingErr error
	for i := len(data) - 1; i >= 0; i-- {
		if err, ok := data[i].(error); ok {
			underlyingErr = err
			break
		}
	}

	fatal := &fatalError{
		msg: fmt.Sprintf(s, data...),
		err: underlyingErr,
	}

	return Wrap(fatal, "Fatal")
}
