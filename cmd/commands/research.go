package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudwego/eino/components/tool"
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/fathom/internal/agent"
	"github.com/dohr-michael/fathom/internal/config"
	"github.com/dohr-michael/fathom/internal/models"
	"github.com/dohr-michael/fathom/internal/plan"
	"github.com/dohr-michael/fathom/internal/report"
	"github.com/dohr-michael/fathom/internal/tools"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	ruleStyle   = lipgloss.NewStyle().Faint(true)
)

// NewResearchCommand returns the research subcommand.
func NewResearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "research",
		Usage:     "Run a deep research session on a topic",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Provider name from config (empty = default provider)",
			},
			&cli.IntFlag{
				Name:  "max-iter",
				Usage: "Maximum agent iterations (0 = config default)",
			},
			&cli.StringFlag{
				Name:  "plan-file",
				Usage: "Path of the live plan document (empty = config default)",
			},
			&cli.DurationFlag{
				Name:  "poll-interval",
				Usage: "Plan monitor poll interval (0 = config default)",
			},
			&cli.StringFlag{
				Name:  "search-provider",
				Usage: "Web search provider: duckduckgo, google, bing (empty = config default)",
			},
			&cli.BoolFlag{
				Name:  "no-monitor",
				Usage: "Disable the live plan monitor",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: runResearch,
	}
}

func runResearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.Args().First())
	if query == "" {
		return fmt.Errorf("usage: fathom research <query>")
	}

	if cmd.Bool("verbose") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	}

	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, cmd)

	providerName := cmd.String("model")
	if providerName == "" {
		providerName = cfg.Models.Default
	}
	providerCfg, ok := cfg.Models.Providers[providerName]
	if !ok {
		return fmt.Errorf("unknown model provider %q", providerName)
	}

	// Fresh plan: any document from a previous session is discarded so no
	// stale state leaks across sessions.
	store := plan.NewStore(cfg.Research.PlanFile)
	if err := store.Reset(); err != nil {
		slog.Warn("could not remove previous research plan", "error", err)
	}

	printBanner(query, providerName, providerCfg.Model, cfg.Research.MaxIterations)

	chatModel, err := models.CreateModel(ctx, providerCfg)
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	searchTool, err := tools.NewWebSearchTool(ctx, cfg.WebSearch)
	if err != nil {
		return err
	}
	toolset := []tool.InvokableTool{
		tools.NewUpdatePlanTool(store),
		searchTool,
		tools.NewWebFetchTool(cfg.WebFetch),
	}

	runner, err := agent.NewResearcher(ctx, chatModel, toolset, agent.Options{
		MaxIterations: cfg.Research.MaxIterations,
	})
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}

	monitor := plan.NewMonitor(store, plan.NewRenderer(os.Stdout), cfg.Research.PollInterval.Duration())
	if !cmd.Bool("no-monitor") {
		fmt.Println(bannerStyle.Render("📋 Research Plan Monitor"))
		monitor.Start()
	}
	defer monitor.Stop()

	started := time.Now()
	fmt.Println("\n🚀 Starting Deep Research...")

	reportMD, err := agent.Run(ctx, runner, query)
	monitor.Stop()
	if err != nil {
		return err
	}

	printReport(reportMD)

	archiveSession(store, query, providerName, started, reportMD)

	fmt.Printf("\n✅ Research completed at %s\n", time.Now().Format("2006-01-02 15:04:05"))
	return nil
}

// applyFlagOverrides lets CLI flags win over config file values.
func applyFlagOverrides(cfg *config.Config, cmd *cli.Command) {
	if v := cmd.Int("max-iter"); v > 0 {
		cfg.Research.MaxIterations = int(v)
	}
	if v := cmd.String("plan-file"); v != "" {
		cfg.Research.PlanFile = v
	}
	if v := cmd.Duration("poll-interval"); v > 0 {
		cfg.Research.PollInterval = config.Duration(v)
	}
	if v := cmd.String("search-provider"); v != "" {
		cfg.WebSearch.Provider = v
	}
}

func printBanner(query, provider, model string, maxIter int) {
	rule := ruleStyle.Render(strings.Repeat("=", 60))
	fmt.Println(rule)
	fmt.Println(bannerStyle.Render("🔍 Fathom Deep Research"))
	fmt.Println(rule)
	fmt.Printf("Query: %s\n", query)
	if model != "" {
		fmt.Printf("Model: %s (%s)\n", model, provider)
	} else {
		fmt.Printf("Model: %s\n", provider)
	}
	fmt.Printf("Max Iterations: %d\n", maxIter)
	fmt.Println(rule)
}

// printReport renders the markdown report for the terminal, falling back to
// the raw text if glamour cannot initialize.
func printReport(md string) {
	rule := ruleStyle.Render(strings.Repeat("=", 60))
	fmt.Println("\n" + rule)
	fmt.Println(bannerStyle.Render("✨ RESEARCH COMPLETED"))
	fmt.Println(rule)

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		if out, rerr := renderer.Render(md); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println("\n" + md)
}

// archiveSession records the run under the sessions directory. Failures are
// logged, not fatal: the report was already shown to the user.
func archiveSession(store *plan.Store, query, model string, started time.Time, md string) {
	sess := &report.Session{
		Query:       query,
		Model:       model,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	if doc, err := store.Read(); err == nil {
		sess.StepsTotal = len(doc.Todos)
		sess.StepsCompleted = doc.Completed()
	}

	if err := report.NewStore(config.SessionsPath()).Save(sess, md); err != nil {
		slog.Warn("could not archive research session", "error", err)
		return
	}
	slog.Info("research session archived", "id", sess.ID)
}
