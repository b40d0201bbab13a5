// Package checkout provides the checkout command.
package checkout

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/internal/appcontext"
	"github.com/agentstation/storefront/internal/cmd/alerts"
	"github.com/agentstation/storefront/internal/cmd/output"
)

// NewCommand creates the checkout command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "checkout",
		GroupID: "core",
		Short:   "Submit a receipt for the cart and empty it",
		Long: `Checkout turns the cart into a receipt and submits it to the backend.

On success a copy of the receipt is written to the download directory and
the cart is emptied. When the backend fails you are asked whether to
download the receipt locally instead; declining leaves the cart unchanged.`,
		Example: `  storefront checkout       # Ask before falling back to a local file
  storefront checkout --yes # Fall back without asking`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			format, err := output.Resolve(app.OutputFormat(), app.Stdout())
			if err != nil {
				return err
			}
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}

			outcome, err := client.Checkout(ctx, app.Confirm)
			if outcome != nil {
				app.Logger().Debug().
					Str("result", outcome.Result.String()).
					Str("file", outcome.Path).
					Msg("Checkout finished")
			}
			return alerts.WriteOutcome(app.Stdout(), format, outcome, err)
		},
	}
}
