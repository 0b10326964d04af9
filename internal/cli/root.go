// Package cli wires the rig command tree. Running with no subcommand
// opens the interactive TUI; the subcommands exist for scripts and
// agents that want the same data without a terminal.
package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rig-cli/internal/assign"
	"rig-cli/internal/catalog"
	"rig-cli/internal/deploy"
	"rig-cli/internal/format"
	"rig-cli/internal/logging"
	"rig-cli/internal/store"
	"rig-cli/internal/tui"
)

type App struct {
	RepoRoot   string
	ConfigDir  string
	DeployCmd  string
	Verbose    bool
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "rig",
		Short:        "Interactive deploy console for skills, hooks, MCP servers and permissions",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI in the current repo
  rig

  # Scriptable commands
  rig plan --pretty
  rig state
  rig docs quickstart
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.RepoRoot, "repo-root", envOr("RIG_REPO_ROOT", ""), "Tools repo root (default: current directory)")
	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("RIG_CONFIG_DIR", ""), "Global config dir (default: ~/.claude)")
	cmd.PersistentFlags().StringVar(&app.DeployCmd, "deployer", envOr("RIG_DEPLOYER", ""), "Deployer command invoked once per pass")
	cmd.PersistentFlags().BoolVar(&app.Verbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("RIG_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newPlanCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

func runTUI(app *App) error {
	repoRoot, configDir, err := resolveDirs(app)
	if err != nil {
		return err
	}
	logger, cleanup, err := logging.New(repoRoot, app.Verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(tui.Options{
		RepoRoot:  repoRoot,
		ConfigDir: configDir,
		Resolver:  catalog.DirResolver{},
		Deployer:  deployerFor(app),
		Logger:    logger,
	})
}

func deployerFor(app *App) deploy.Deployer {
	if cmd := strings.TrimSpace(app.DeployCmd); cmd != "" {
		return deploy.ExecDeployer{Command: strings.Fields(cmd)}
	}
	return deploy.ExecDeployer{Command: []string{"claude-deploy"}}
}

func resolveDirs(app *App) (repoRoot, configDir string, err error) {
	repoRoot = app.RepoRoot
	if repoRoot == "" {
		repoRoot, err = os.Getwd()
		if err != nil {
			return "", "", err
		}
	}
	configDir = app.ConfigDir
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", err
		}
		configDir = filepath.Join(home, ".claude")
	}
	return repoRoot, configDir, nil
}

// loadBoard builds a board from the repo catalog with saved state
// applied, the same starting point the TUI sees.
func loadBoard(app *App) (*assign.Board, error) {
	repoRoot, _, err := resolveDirs(app)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.DirResolver{}.Resolve(repoRoot)
	if err != nil {
		return nil, err
	}
	board := assign.NewBoard(cat)
	st := store.Store{Dir: store.StateDir(repoRoot)}
	if saved, err := st.Load(); err == nil {
		store.Apply(saved, board)
	}
	return board, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
