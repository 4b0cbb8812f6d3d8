// Package commands defines the Fathom CLI.
package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/fathom/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "fathom",
		Usage: "Deep research agent with a live plan monitor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
		},
		Commands: []*cli.Command{
			NewResearchCommand(),
			NewPlanCommand(),
			NewSessionsCommand(),
		},
	}
}
