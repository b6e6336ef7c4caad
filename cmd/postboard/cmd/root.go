// Package cmd implements the postboard CLI commands.
//
// A root command dispatches to subcommands (run, serve, config, env). Each
// subcommand parses its own flags with go-arg.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/go-drift/postboard/pkg/log"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	// Flags points at the go-arg destination struct, if the command has one.
	Flags       func() any
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "postboard",
	Short: "postboard - a networked post board in the terminal",
	Long: `postboard renders a post list and a post form as terminal frames,
backed by a JSONPlaceholder-compatible posts API.

Use "postboard <command> --help" for more information about a command.`,
	Usage: "postboard [--log-level LEVEL] <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// Output streams, swapped in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --log-level
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch a {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, a)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "postboard version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, a)
		case "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("--log-level requires a level name")
			}
			if err := log.SetLevelName(args[i+1]); err != nil {
				return err
			}
			logLevelFlag = args[i+1]
			i++
		default:
			if strings.HasPrefix(a, "--log-level=") {
				name := strings.TrimPrefix(a, "--log-level=")
				if err := log.SetLevelName(name); err != nil {
					return err
				}
				logLevelFlag = name
				continue
			}
			filteredArgs = append(filteredArgs, a)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, a := range cmdArgs {
		if a == "-h" || a == "--help" || a == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := cmd.Run(cmdArgs); err != nil && !errors.Is(err, errHelpShown) {
		return err
	}
	return nil
}

// logLevelFlag is the --log-level value, which beats the config file.
var logLevelFlag string

var errHelpShown = errors.New("help shown")

// parseFlags parses args into dest with go-arg. A help request prints the
// flag help and returns errHelpShown, which Execute treats as success.
func parseFlags(program string, dest any, args []string) error {
	p, err := arg.NewParser(arg.Config{Program: program, IgnoreEnv: true}, dest)
	if err != nil {
		return err
	}
	if err := p.Parse(args); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(stdout)
			return errHelpShown
		}
		return fmt.Errorf("%s: %w", program, err)
	}
	return nil
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --log-level LEVEL    off, fatal, error, warn, info, debug or trace")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  postboard serve                     Serve 100 seeded posts on 127.0.0.1:8080")
	fmt.Fprintln(stdout, "  postboard run --base-url URL        Run the board against URL")
	fmt.Fprintln(stdout, "  postboard env                       List environment overrides")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	if cmd.Flags == nil {
		return
	}
	p, err := arg.NewParser(arg.Config{Program: "postboard " + cmd.Name, IgnoreEnv: true}, cmd.Flags())
	if err != nil {
		return
	}
	fmt.Fprintln(stdout)
	p.WriteHelp(stdout)
}
