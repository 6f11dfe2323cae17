// Package editor resolves which editor the user wants and launches it on a
// crate's source directory.
//
// Resolution walks a precedence chain and stops at the first non-empty
// entry: the --editor flag, the config file, then the CARGO_EDITOR, VISUAL,
// and EDITOR environment variables. There is no built-in default; when the
// whole chain is empty, resolution fails with EDITOR_NOT_CONFIGURED rather
// than guessing at vi or notepad.
//
// A configured value may carry arguments ("code --wait", "emacsclient -n").
// It is split on whitespace, and the target directory is appended as the
// final argument. Values that need shell quoting are out of scope.
package editor

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/JonnieCache/cargo-open/pkg/errors"
)

// envVars are the environment variables consulted for an editor, in
// precedence order. CARGO_EDITOR is specific to this tool; VISUAL and
// EDITOR are the conventional fallbacks.
var envVars = []string{"CARGO_EDITOR", "VISUAL", "EDITOR"}

// Command is a resolved editor invocation.
type Command struct {
	Path   string   // program to run
	Args   []string // arguments preceding the target directory
	Source string   // which precedence entry produced it: "flag", "config", or the variable name
}

// String returns the command line as the user configured it, without the
// target directory.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Resolver picks an editor. The flag beats the config file, which beats the
// environment.
type Resolver struct {
	Flag   string // --editor flag value, empty when not passed
	Config string // editor setting from the config file
}

// Resolve walks the precedence chain and returns the first configured
// editor. Whitespace-only entries count as unset.
func (r Resolver) Resolve() (Command, error) {
	if cmd, ok := parseCommand(r.Flag, "flag"); ok {
		return cmd, nil
	}
	if cmd, ok := parseCommand(r.Config, "config"); ok {
		return cmd, nil
	}
	for _, name := range envVars {
		if cmd, ok := parseCommand(os.Getenv(name), name); ok {
			return cmd, nil
		}
	}
	return Command{}, errors.New(errors.ErrCodeEditorNotConfigured,
		"no editor configured: set $CARGO_EDITOR, $VISUAL, or $EDITOR, or pass --editor")
}

func parseCommand(raw, source string) (Command, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Path: fields[0], Args: fields[1:], Source: source}, true
}

// ExitStatusError reports that the editor ran and exited non-zero. The CLI
// forwards Code as its own exit status.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("editor exited with status %d", e.Code)
}

// Launch runs the editor on dir and blocks until it exits. The child
// inherits this process's stdin, stdout, and stderr, so terminal editors
// get the terminal. The run is not bound to a context: while the editor is
// in the foreground, interrupts belong to it.
//
// A failure to start the editor is LAUNCH_ERROR. An editor that starts and
// exits non-zero is an *ExitStatusError instead.
func (c Command) Launch(dir string) error {
	args := append(append([]string{}, c.Args...), dir)
	cmd := exec.Command(c.Path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return &ExitStatusError{Code: exitErr.ExitCode()}
		}
		return errors.Wrap(errors.ErrCodeLaunch, err, "launch editor %q", c.String())
	}
	return nil
}
