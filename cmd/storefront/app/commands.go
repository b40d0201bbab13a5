package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/cmd/storefront/cmd/cart"
	"github.com/agentstation/storefront/cmd/storefront/cmd/checkout"
	"github.com/agentstation/storefront/cmd/storefront/cmd/products"
	"github.com/agentstation/storefront/cmd/storefront/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(products.NewCommand(a))
	rootCmd.AddCommand(cart.NewCommand(a))
	rootCmd.AddCommand(checkout.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(serve.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("storefront %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
