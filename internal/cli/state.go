package cli

import (
	"github.com/spf13/cobra"

	"rig-cli/internal/store"
)

func newStateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the saved assignment state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, _, err := resolveDirs(app)
			if err != nil {
				return err
			}
			st, err := store.Store{Dir: store.StateDir(repoRoot)}.Load()
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}
}
