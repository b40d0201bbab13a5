// Package cart provides the shopping cart commands.
package cart

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/appcontext"
	"github.com/agentstation/storefront/internal/cmd/alerts"
	"github.com/agentstation/storefront/internal/cmd/output"
	"github.com/agentstation/storefront/pkg/errors"
)

// NewCommand creates the cart command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cart",
		GroupID: "core",
		Short:   "Show and change the shopping cart",
		Long: `Cart manages the persisted shopping cart.

Lines are addressed by the 1-based number shown in "storefront cart show".
Every change is saved immediately, so the cart survives restarts.`,
		Example: `  storefront cart add 3          # Add product 3
  storefront cart add 3 --qty 2  # Add two units
  storefront cart inc 1          # One more of line 1
  storefront cart remove 2       # Drop line 2
  storefront cart save           # Submit the cart to the backend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd.Context(), app)
		},
	}

	cmd.AddCommand(
		newShowCommand(app),
		newAddCommand(app),
		newLineCommand(app, "inc", "Increase the quantity of a line by one", func(ctx context.Context, c storefront.Client, i int) bool {
			return c.Cart().Increment(ctx, i)
		}),
		newLineCommand(app, "dec", "Decrease the quantity of a line by one (never below 1)", func(ctx context.Context, c storefront.Client, i int) bool {
			return c.Cart().Decrement(ctx, i)
		}),
		newLineCommand(app, "remove", "Remove a line from the cart", func(ctx context.Context, c storefront.Client, i int) bool {
			return c.Cart().Remove(ctx, i)
		}, "rm"),
		newClearCommand(app),
		newSaveCommand(app),
		newExportCommand(app),
	)

	return cmd
}

func newShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Show the cart and its total",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd.Context(), app)
		},
	}
}

func newAddCommand(app appcontext.Interface) *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a catalog product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.NewValidationError("product-id", args[0], "must be a number")
			}
			if qty < 1 {
				return errors.NewValidationError("qty", qty, "must be at least 1")
			}

			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			if _, err := client.LoadCatalog(ctx); err != nil {
				return err
			}
			for range qty {
				if err := client.AddProduct(ctx, id); err != nil {
					return err
				}
			}
			return show(ctx, app)
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "n", 1, "number of units to add")
	return cmd
}

type lineFunc func(ctx context.Context, c storefront.Client, index int) bool

func newLineCommand(app appcontext.Interface, use, short string, fn lineFunc, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <line>",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			index, err := parseLine(args[0])
			if err != nil {
				return err
			}
			if !fn(ctx, client, index) {
				return errors.NewNotFoundError("cart line", args[0])
			}
			return show(ctx, app)
		},
	}
}

func newClearCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every line from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			client.Cart().Clear(ctx)
			return show(ctx, app)
		},
	}
}

func newSaveCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Submit the cart to the backend",
		Long: `Save submits the cart to the backend. The cart is kept either way.

When the backend fails you are asked whether to download the cart as a
local JSON file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			outcome, err := client.SaveCart(ctx, app.Confirm)
			return report(app, outcome, err)
		},
	}
}

func newExportCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the cart to a local file without contacting the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			path, err := client.ExportCart()
			if err != nil {
				return report(app, nil, err)
			}
			return write(app, alerts.NewSuccess("Cart exported.").WithDetails("file: "+path))
		},
	}
}

// show prints the cart in the configured format.
func show(ctx context.Context, app appcontext.Interface) error {
	format, err := output.Resolve(app.OutputFormat(), app.Stdout())
	if err != nil {
		return err
	}
	client, err := app.Client(ctx)
	if err != nil {
		return err
	}
	return output.FormatCart(app.Stdout(), client.Cart().Entries(), format)
}

// report prints a workflow outcome.
func report(app appcontext.Interface, outcome *storefront.Outcome, err error) error {
	format, ferr := output.Resolve(app.OutputFormat(), app.Stdout())
	if ferr != nil {
		return ferr
	}
	return alerts.WriteOutcome(app.Stdout(), format, outcome, err)
}

func write(app appcontext.Interface, a *alerts.Alert) error {
	format, err := output.Resolve(app.OutputFormat(), app.Stdout())
	if err != nil {
		return err
	}
	return alerts.NewFormatWriter(app.Stdout(), format).WriteAlert(a)
}

// parseLine converts a 1-based line number into an index.
func parseLine(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, errors.NewValidationError("line", arg, "must be a positive number")
	}
	return n - 1, nil
}
