// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the volplan CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "volplan",
		Short:         "Apply LVM and EBS volume plans to this node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Apply())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Plans())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}

// planFlags are shared by the commands that act on requested plans.
type planFlags struct {
	configPath string
	plans      []string
}

func (f *planFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to configuration file (default: volplan.yaml)")
	cmd.Flags().StringArrayVar(&f.plans, "plan", nil, "Volume plan to apply, repeatable (overrides volumes.plans)")
}
