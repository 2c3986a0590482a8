package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/volplan/cmd/volplan/handlers"
)

// Apply returns the command for applying volume plans.
//
// Optional flags:
//
//	--config, -c: Path to node configuration YAML file (default: auto-detect volplan.yaml)
//	--plan: Volume plan name, repeatable (default: volumes.plans from the config)
//	--log-format: text or json
func Apply() *cobra.Command {
	var flags planFlags
	var logFormat string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the requested volume plans",
		Long: `Apply the volume plans requested for this node.

For every plan, EBS volumes are created and attached first, then each LVM
volume group is declared with its logical volumes. New logical volumes are
formatted and every volume with a mount point is mounted and persisted in
fstab. Existing resources are left in place, so apply can be re-run safely.

Unknown plan names are reported and skipped.

Examples:
  # Apply the plans listed in volplan.yaml
  volplan apply

  # Apply one plan with JSON logs
  volplan apply --plan db-tier --log-format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), flags.configPath, flags.plans, logFormat)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&logFormat, "log-format", handlers.LogFormatText, "Log format: text or json")

	return cmd
}
