package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/provisio/provisio"
	"github.com/provisio/provisio/internal/config"
	"github.com/provisio/provisio/internal/logging"
	"github.com/provisio/provisio/internal/presentation/tui"
)

// ChatOptions configures the interactive chat command.
type ChatOptions struct {
	Config *config.Config

	// SessionID resumes an existing conversation instead of starting a
	// fresh one.
	SessionID string

	Debug bool

	// In and Out default to stdin/stdout. Overridable for tests.
	In  io.Reader
	Out io.Writer
}

// RunChat drives a conversation on the terminal. When stdout is a TTY the
// assistant's replies are rendered as markdown; when piped, plain text goes
// through untouched so the output stays scriptable. A confirmed creation is
// dispatched immediately, the user never sees the execute handshake.
func RunChat(opts ChatOptions) error {
	logger := chatLogger(opts.Debug)

	eng, closeFn, err := BuildEngine(opts.Config, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	interactive := isTerminal(out)
	render := func(s string) string { return s }
	if interactive {
		tui.PrintBanner(provisio.Version)
		markdown := tui.NewRenderer()
		render = func(s string) string {
			rendered, err := markdown(s)
			if err != nil {
				return s
			}
			return rendered
		}
	}

	sessionID, first, err := openConversation(ctx, eng, opts.SessionID)
	if err != nil {
		return err
	}
	if first != "" {
		fmt.Fprint(out, render(first))
		if !interactive {
			fmt.Fprintln(out)
		}
	}
	logger.Debug("chat session open", "session_id", sessionID)

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		turns, err := eng.Run(ctx, sessionID, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			return err
		}
		for _, t := range turns {
			fmt.Fprint(out, render(t.Message))
			if !interactive {
				fmt.Fprintln(out)
			}
		}

		if ctx.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if interactive {
		fmt.Fprintf(out, "\nSession %s saved. Resume with: provisio chat --session %s\n", sessionID, sessionID)
	}
	return nil
}

// openConversation resumes the given session or starts a new one, returning
// the session ID and the first message to show.
func openConversation(ctx context.Context, eng *provisio.Engine, sessionID string) (string, string, error) {
	if sessionID != "" {
		sess, err := eng.Session(ctx, sessionID)
		if err != nil {
			return "", "", fmt.Errorf("resume session %s: %w", sessionID, err)
		}
		return sessionID, fmt.Sprintf("Resumed session %s (state: %s).\n", sess.ID, sess.State), nil
	}

	welcome, err := eng.StartSession(ctx)
	if err != nil {
		return "", "", err
	}
	return welcome.SessionID, welcome.Message, nil
}

func chatLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug, "text")
	}
	return logging.NewNop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
