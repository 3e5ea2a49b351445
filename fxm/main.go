// Command fxm queries and maintains a file of FX rates.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/fxmatrix/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Exits when run by the shell to complete a command line.
	cmd.Completion().Complete("fxm")

	commander := subcommands.NewCommander(flag.CommandLine, "fxm")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands may be provided by an fxm-<subcommand> binary.
	if flag.NArg() > 0 {
		name := flag.Arg(0)
		known := false
		commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
			if c.Name() == name {
				known = true
			}
		})
		if !known {
			if ran, code := cmd.RunExtension(name, flag.Args()[1:]); ran {
				os.Exit(code)
			}
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
