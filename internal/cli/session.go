package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/provisio/provisio/internal/config"
	"github.com/provisio/provisio/internal/logging"
)

// ListSessions prints the ID, state and last update of every stored
// session, one per line, in store order.
func ListSessions(ctx context.Context, cfg *config.Config, out io.Writer) error {
	eng, closeFn, err := BuildEngine(cfg, logging.NewNop())
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	ids, err := eng.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No sessions found.")
		return nil
	}
	for _, id := range ids {
		sess, err := eng.Session(ctx, id)
		if err != nil {
			fmt.Fprintf(out, "%s\t(unreadable: %v)\n", id, err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", sess.ID, sess.State, sess.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// ShowSession dumps one session as indented JSON.
func ShowSession(ctx context.Context, cfg *config.Config, sessionID string, out io.Writer) error {
	eng, closeFn, err := BuildEngine(cfg, logging.NewNop())
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	sess, err := eng.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// DeleteSession removes one session from the configured store.
func DeleteSession(ctx context.Context, cfg *config.Config, sessionID string, out io.Writer) error {
	eng, closeFn, err := BuildEngine(cfg, logging.NewNop())
	if err != nil {
		return err
	}
	defer func() { _ = closeFn() }()

	if err := eng.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	fmt.Fprintf(out, "Session %s deleted.\n", sessionID)
	return nil
}
