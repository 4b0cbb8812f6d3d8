package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/fathom/internal/config"
	"github.com/dohr-michael/fathom/internal/report"
)

// NewSessionsCommand returns the sessions subcommand, listing archived
// research sessions.
func NewSessionsCommand() *cli.Command {
	return &cli.Command{
		Name:   "sessions",
		Usage:  "List archived research sessions",
		Action: runSessions,
	}
}

func runSessions(_ context.Context, _ *cli.Command) error {
	sessions, err := report.NewStore(config.SessionsPath()).List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no archived research sessions")
		return nil
	}

	for _, sess := range sessions {
		fmt.Printf("%-20s %s  [%d/%d steps]  %s\n",
			sess.ID,
			sess.StartedAt.Format("2006-01-02 15:04"),
			sess.StepsCompleted, sess.StepsTotal,
			sess.Query,
		)
	}
	return nil
}
