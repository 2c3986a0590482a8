package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/volplan/cmd/volplan/handlers"
)

// Plan returns the dry-run command.
func Plan() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the operations apply would run on a fresh host",
		Long: `Show the ordered operations apply would run on a host where none of the
requested volumes exist yet. Nothing on this host is changed; AWS
credentials are still resolved so missing secrets are reported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), flags.configPath, flags.plans, cmd.OutOrStdout())
		},
	}

	flags.bind(cmd)

	return cmd
}
