// Package cmd implements the trellis CLI commands.
//
// A root command dispatches to subcommands (render, demos, config).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
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
	Run   func(env *Env, args []string) error
}

// Env carries the process-wide settings every command sees.
type Env struct {
	// Dir is the directory trellis.yaml and go.mod are looked up from.
	Dir string
	Out io.Writer
	// Err receives log output.
	Err io.Writer
}

var rootCmd = &Command{
	Name:  "trellis",
	Short: "trellis - retained-mode widget runtime",
	Long: `trellis drives a widget tree without a window: layout, paint and
rasterization run in process, and the result is written as a PNG.

Use "trellis <command> --help" for more information about a command.`,
	Usage: "trellis [--dir DIR] <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var (
	commands = make(map[string]*Command)
	ordered  []*Command
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	ordered = append(ordered, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:], os.Stdout)
}

func run(args []string, out io.Writer) error {
	env := &Env{Dir: ".", Out: out, Err: os.Stderr}

	var filtered []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filtered) == 0 {
				printHelp(out, rootCmd)
				return nil
			}
			filtered = append(filtered, arg)
		case "-v", "--version", "version":
			if len(filtered) == 0 {
				fmt.Fprintf(out, "trellis version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filtered = append(filtered, arg)
		case "--dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--dir requires a directory path")
			}
			env.Dir = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--dir=") {
				env.Dir = strings.TrimPrefix(arg, "--dir=")
				continue
			}
			filtered = append(filtered, arg)
		}
	}
	args = filtered

	if len(args) == 0 {
		printHelp(out, rootCmd)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		printHelp(out, rootCmd)
		return fmt.Errorf("unknown command: %s", args[0])
	}
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(out, cmd)
			return nil
		}
	}
	return cmd.Run(env, cmdArgs)
}

func printHelp(out io.Writer, cmd *Command) {
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", cmd.Usage)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, sub := range ordered {
		fmt.Fprintf(out, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -h, --help           Show help for a command")
	fmt.Fprintln(out, "  -v, --version        Show version information")
	fmt.Fprintln(out, "  --dir DIR            Project directory (default: current directory)")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  trellis demos                      List the built-in layouts")
	fmt.Fprintln(out, "  trellis render baseline -o out.png Render a layout to a PNG")
}

func printCommandHelp(out io.Writer, cmd *Command) {
	fmt.Fprintln(out, cmd.Long)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s\n", cmd.Usage)
}
