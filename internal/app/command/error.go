package command

import (
	"fmt"
)

// Error marks a failure of the command itself, as opposed to a usage error
// raised while parsing flags.
type Error struct {
	Inner error
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, e.Inner)
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func WrapError(err error) error {
	return WrapErrorMsg(err, "command failed")
}

func WrapErrorMsg(err error, msg string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Inner: err,
		Msg:   msg,
	}
}
