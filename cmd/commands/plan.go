package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/fathom/internal/config"
	"github.com/dohr-michael/fathom/internal/plan"
)

// NewPlanCommand returns the plan subcommand: a one-shot view of the
// current research plan document.
func NewPlanCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Show the current research plan",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "plan-file",
				Usage: "Path of the plan document (empty = config default)",
			},
		},
		Action: runPlan,
	}
}

func runPlan(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return err
	}
	path := cmd.String("plan-file")
	if path == "" {
		path = cfg.Research.PlanFile
	}

	doc, err := plan.NewStore(path).Read()
	if err != nil {
		if errors.Is(err, plan.ErrNotYetCreated) {
			fmt.Printf("no research plan found at %s\n", path)
			return nil
		}
		return err
	}

	fmt.Println(plan.Frame(doc))
	return nil
}
