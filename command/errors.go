package command

import "errors"

var (
	// ErrUnknownCommand indicates a command name absent from the table.
	ErrUnknownCommand = errors.New("command: unknown command")
	// ErrBadArguments indicates a wrong token count or an unparsable token.
	ErrBadArguments = errors.New("command: bad arguments")
)
