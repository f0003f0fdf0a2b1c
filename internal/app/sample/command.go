package sample

import "github.com/spf13/pflag"

const (
	Name        = "Sample"
	Description = "Testing automatic report generation and deploying to GitHub pages."
)

// Command holds the parsed command-line options passed to the Service at
// construction time. It defines no options yet; new options are added as
// fields and registered in BindFlags.
type Command struct{}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) Name() string {
	return Name
}

func (c *Command) Description() string {
	return Description
}

func (c *Command) BindFlags(_ *pflag.FlagSet) {}
