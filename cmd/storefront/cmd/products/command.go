// Package products provides the catalog browsing commands.
package products

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/internal/appcontext"
	"github.com/agentstation/storefront/internal/cmd/output"
	"github.com/agentstation/storefront/pkg/catalog"
)

// NewCommand creates the products command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "catalog"},
		GroupID: "core",
		Short:   "Browse the product catalog",
		Long: `Products fetches the catalog from the storefront backend.

The primary endpoint is tried first; when it fails the static fallback
resource is used instead. Products are listed in id order.`,
		Example: `  storefront products                 # List all products
  storefront products search coffee   # Filter by name or category
  storefront products -o wide         # Include categories`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, "")
		},
	}

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newSearchCommand(app))

	return cmd
}

func newListCommand(app appcontext.Interface) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, query)
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "only show products whose name or category contains this text")
	return cmd
}

func newSearchCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by name or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, strings.Join(args, " "))
		},
	}
}

func run(cmd *cobra.Command, app appcontext.Interface, query string) error {
	ctx := cmd.Context()

	format, err := output.Resolve(app.OutputFormat(), app.Stdout())
	if err != nil {
		return err
	}

	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	if _, err := client.LoadCatalog(ctx); err != nil {
		return err
	}

	var products []catalog.Product
	if strings.TrimSpace(query) == "" {
		products = client.Products()
	} else {
		products = client.Search(query)
	}

	app.Logger().Debug().Str("query", query).Int("count", len(products)).Msg("Listing products")
	return output.FormatProducts(app.Stdout(), products, format)
}
