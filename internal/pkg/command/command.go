package command

import "context"

// Command is a unit of work driven by the tool executor.
type Command interface {
	Execute(ctx context.Context) error
}
