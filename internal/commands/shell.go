package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/exitcode"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd runs session commands read line by line from the session input.
type ShellCmd struct {
	noPrompt bool
}

// SetNoPrompt sets the --no-prompt flag (for testing).
func (c *ShellCmd) SetNoPrompt(noPrompt bool) {
	c.noPrompt = noPrompt
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"repl"} }
func (c *ShellCmd) Synopsis() string  { return "Read commands from stdin" }
func (c *ShellCmd) Usage() string     { return "taskpad shell [--no-prompt]" }
func (c *ShellCmd) Scope() Scope      { return ScopeProcess }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.noPrompt, "no-prompt", false, "")
}

// Run executes lines until quit, exit, end of input or cancellation.
// Failing lines are reported and the shell keeps going.
func (c *ShellCmd) Run(ctx context.Context, sess *Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	registry := sess.Registry
	if registry == nil {
		registry = DefaultRegistry
	}
	logger := sess.Log("shell")
	showPrompt := !c.noPrompt && !sess.Config.Quiet

	lines, readErr, stop := readLines(sess.In)
	defer stop()

	lineNo := 0
loop:
	for {
		if showPrompt {
			fmt.Fprint(out, "> ")
		}

		var text string
		select {
		case <-ctx.Done():
			if showPrompt {
				fmt.Fprintln(out)
			}
			logger.Debugw("msg", "shell cancelled", "lines", lineNo)
			return exitcode.Success
		case t, ok := <-lines:
			if !ok {
				break loop
			}
			text = t
		}
		lineNo++

		line := strings.TrimSpace(text)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words, err := SplitLine(line)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			continue
		}
		if words[0] == "quit" || words[0] == "exit" {
			return exitcode.Success
		}

		code := registry.Exec(ctx, sess, words, out, errOut)
		logger.Debugw("msg", "line done", "line", lineNo, "code", code)
	}

	if showPrompt {
		fmt.Fprintln(out)
	}
	if err := <-readErr; err != nil {
		fmt.Fprintf(errOut, "error: failed to read input: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// readLines scans r on its own goroutine so the caller can wait on a
// context as well. lines is closed at end of input, after the scan error
// (or nil) has been sent on errc. stop releases a reader waiting to hand
// over a line.
func readLines(r io.Reader) (lines <-chan string, errc <-chan error, stop func()) {
	out := make(chan string)
	errCh := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-done:
				return
			}
		}
		errCh <- scanner.Err()
	}()

	return out, errCh, func() { close(done) }
}

// SplitLine splits a shell line into words.
// Single or double quotes group words; quotes are removed.
func SplitLine(line string) ([]string, error) {
	var words []string
	var cur strings.Builder
	inWord := false
	var quote rune

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
