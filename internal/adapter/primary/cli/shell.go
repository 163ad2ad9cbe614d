package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"volume-ctl/internal/logging"
)

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell that runs volume-ctl commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveShell(prompt, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "volume-ctl> ", "shell prompt")
	return cmd
}

func runInteractiveShell(prompt string, out io.Writer) error {
	historyFile := filepath.Join(os.TempDir(), "volume-ctl-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	baseVerbosity = logging.Verbosity()
	fmt.Fprintln(out, "Interactive shell. Type 'help' for usage, 'exit' to quit.")

	return shellLoop(rl, out)
}

// lineReader is the part of *readline.Instance used by the shell loop.
type lineReader interface {
	Readline() (string, error)
}

// shellLoop runs lines from rl until exit, EOF or a terminal error.
func shellLoop(rl lineReader, out io.Writer) error {
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(out)
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out)
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}
		if done := runShellLine(line, out); done {
			return nil
		}
	}
}

// runShellLine handles one line of shell input and reports whether the shell should exit.
func runShellLine(line string, out io.Writer) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	switch line {
	case "exit", "quit":
		fmt.Fprintln(out, "Bye!")
		return true
	case "help":
		printShellHelp(out)
		return false
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(out, "Parse error: %v\n", err)
		return false
	}
	if len(tokens) == 0 {
		return false
	}
	switch tokens[0] {
	case "log":
		if err := handleShellLog(tokens[1:], out); err != nil {
			fmt.Fprintf(out, "log: %v\n", err)
		}
		return false
	case "shell":
		fmt.Fprintln(out, "Already in the shell. Enter another command or 'exit' to quit.")
		return false
	}

	if err := executeArgs(tokens, out); err != nil {
		fmt.Fprintf(out, "command error: %v\n", err)
	}
	return false
}

func executeArgs(args []string, out io.Writer) error {
	if len(args) == 0 {
		return nil
	}
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	root.SilenceErrors = true
	return root.Execute()
}

func handleShellLog(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount, qcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "increase verbosity")
	fs.CountVarP(&qcount, "quiet", "q", "decrease verbosity")
	fs.StringVar(&level, "level", "", "set level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		baseVerbosity = count
	case vcount > 0 || qcount > 0:
		baseVerbosity = vcount - qcount
	default:
		fmt.Fprintf(out, "log level: %s\n", logging.LevelName())
		return nil
	}

	logging.SetVerbosity(baseVerbosity)
	fmt.Fprintf(out, "log level set to %s\n", logging.LevelName())
	return nil
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, `Examples:
  output up 5                 # raise the output volume by 5%
  output down                 # lower it by the configured step
  output set 40               # set it to 40%
  output toggle-mute          # mute or unmute speakers
  input mute                  # mute the microphone
  input get                   # print the microphone level
  log -vv                     # more log output
  log --level warn            # set the log level
  log --show                  # print the current log level
  exit / quit                 # leave the shell`)
}
