package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/volplan/cmd/volplan/handlers"
)

// Plans returns the command group for inspecting the plan registry.
func Plans() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Inspect registered volume plans",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: volplan.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered volume plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.PlansList(cmd.Context(), configPath, cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show the layout of a volume plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.PlansShow(cmd.Context(), configPath, args[0], cmd.OutOrStdout())
		},
	})

	return cmd
}
