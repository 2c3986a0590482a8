package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/volplan/cmd/volplan/handlers"
)

// Doctor returns the command for checking host prerequisites.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the host tools volplan needs are installed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: volplan.yaml)")

	return cmd
}
