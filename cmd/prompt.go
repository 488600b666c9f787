package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/titlewatch/loadstate"
)

// confirm asks a yes/no question and reports whether the answer was yes.
// EOF or an unreadable input counts as no. The reader must be shared across
// prompts so buffered answers are not lost.
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// retrier is the part of a load controller the retry loop needs
type retrier[T any] interface {
	Load(ctx context.Context) loadstate.State[T]
	Retry(ctx context.Context) loadstate.State[T]
}

// loadWithRetry runs the first load and, while it fails with a retryable
// error, shows the error and asks whether to retry. It returns the final
// state; a Failed state means the user gave up or retrying cannot help.
func loadWithRetry[T any](ctx context.Context, c retrier[T], render func(loadstate.State[T]) string, prompt bool, in io.Reader, out io.Writer) loadstate.State[T] {
	answers := bufio.NewReader(in)

	state := c.Load(ctx)
	for state.IsFailed() {
		fmt.Fprintln(out, render(state))

		if !prompt || !state.Err.Retryable() || ctx.Err() != nil {
			return state
		}
		if !confirm(answers, out, "Retry?") {
			return state
		}

		state = c.Retry(ctx)
	}
	return state
}

// watchStates logs every state a controller commits until it is closed
func watchStates[T any](updates <-chan loadstate.State[T], name string) {
	for s := range updates {
		logger.Debug().
			Str("view", name).
			Str("status", s.Status.String()).
			Uint64("seq", s.Seq).
			Msg("State changed")
	}
}
