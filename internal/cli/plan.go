package cli

import (
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the deployment plan for the saved assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := loadBoard(app)
			if err != nil {
				return err
			}
			plan := board.BuildPlan()

			passes := make([]map[string]any, 0, len(plan.ProjectItems))
			for _, p := range plan.ProjectItems {
				passes = append(passes, map[string]any{
					"path":  p.Path,
					"items": p.Items,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"global_items":    plan.GlobalItems,
				"project_passes":  passes,
				"on_path_scripts": plan.OnPathScripts,
				"empty":           plan.IsEmpty(),
			}})
		},
	}
}
