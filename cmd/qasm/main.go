// cmd/qasm is the command-line interface to qasm, an assembler for a 10-bit
// word machine with base-4 letter object code encoding.
package main

import (
	"context"
	"os"

	"github.com/nyasm/qasm/internal/cli"
	"github.com/nyasm/qasm/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Assembler(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
