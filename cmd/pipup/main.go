package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chis/pipup/internal/logging"
	"github.com/chis/pipup/internal/output"
	"github.com/chis/pipup/internal/update"
)

const usage = `pipup - report and install available upgrades for pip packages

Usage:
  pipup [flags]            check for available upgrades (default)
  pipup check [flags]      same as the default
  pipup show <package>     look up one package on the index
  pipup history [flags]    list recorded checks and upgrades
  pipup version            print the version

Run 'pipup <command> -h' for command flags.`

func main() {
	args := os.Args[1:]

	// Bare invocation and anything starting with a flag is the check
	// command; named subcommands consume the remaining arguments.
	command := "check"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "check":
		runCommand(NewCheckCommand(), args)
	case "show":
		runCommand(NewShowCommand(), args)
	case "history":
		runCommand(NewHistoryCommand(), args)
	case "version":
		fmt.Println("pipup " + output.Version)
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s\n", command, usage)
		os.Exit(2)
	}
}

// Command is the shape every subcommand shares.
type Command interface {
	ParseFlags(args []string) error
	Run(ctx context.Context) error
}

// runCommand parses flags, runs the command, and maps the error to an
// exit code. An interactive quit is a normal exit.
func runCommand(cmd Command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := cmd.Run(context.Background()); err != nil {
		if errors.Is(err, update.ErrQuit) {
			os.Exit(0)
		}
		logging.Error("%v", err)
		os.Exit(1)
	}
}
