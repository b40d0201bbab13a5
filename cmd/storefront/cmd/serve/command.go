// Package serve provides the dev backend command.
package serve

import (
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/internal/appcontext"
	"github.com/agentstation/storefront/internal/server"
	"github.com/agentstation/storefront/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Run a local storefront backend for development",
		Long: `Serve starts a small backend implementing the storefront API:

  GET  /api/products   product catalog (seed file or built-in demo list)
  GET  /products.json  same catalog, the static fallback resource
  POST /api/cart       accept a cart, reply 201 "cart saved"
  POST /api/receipt    accept a receipt, reply 201 "receipt saved"
  GET  /api/receipts   receipts accepted so far
  GET  /health         liveness

Invalid submissions get a 400 with a plain-text reason.`,
		Example: `  storefront serve
  storefront serve --addr :9000 --seed-file products.json
  storefront serve --auth --api-key s3cret --rate-limit 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.ServerConfig()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, &cfg); err != nil {
				return err
			}

			srv, err := server.New(cfg, app.Logger())
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address host:port (overrides config addr)")
	cmd.Flags().String("seed-file", "", "JSON product list to serve (overrides config seed_file)")
	cmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins (default all)")
	cmd.Flags().Bool("no-cors", false, "disable CORS headers")
	cmd.Flags().Bool("auth", false, "require an API key for submissions")
	cmd.Flags().String("auth-header", "X-API-Key", "header carrying the API key")
	cmd.Flags().String("api-key", "", "API key accepted when --auth is set")
	cmd.Flags().Int("rate-limit", 0, "requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", 0, "catalog cache TTL (default 5m)")

	return cmd
}

// applyFlags overrides cfg with the flags the user set.
func applyFlags(cmd *cobra.Command, cfg *server.Config) error {
	flags := cmd.Flags()

	if addr, _ := flags.GetString("addr"); addr != "" {
		host, port, err := splitAddr(addr)
		if err != nil {
			return err
		}
		cfg.Host, cfg.Port = host, port
	}
	if seed, _ := flags.GetString("seed-file"); seed != "" {
		cfg.SeedFile = seed
	}
	if origins, _ := flags.GetStringSlice("cors-origins"); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	if noCORS, _ := flags.GetBool("no-cors"); noCORS {
		cfg.CORSEnabled = false
	}
	if auth, _ := flags.GetBool("auth"); auth {
		cfg.AuthEnabled = true
	}
	if header, _ := flags.GetString("auth-header"); header != "" {
		cfg.AuthHeader = header
	}
	if key, _ := flags.GetString("api-key"); key != "" {
		cfg.APIKey = key
	}
	if limit, _ := flags.GetInt("rate-limit"); limit > 0 {
		cfg.RateLimit = limit
	}
	if ttl, _ := flags.GetDuration("cache-ttl"); ttl > 0 {
		cfg.CacheTTL = ttl
	} else if ttl < 0 {
		return errors.NewValidationError("cache-ttl", ttl.String(), "must not be negative")
	}
	return nil
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, errors.NewValidationError("addr", addr, "expected host:port")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, errors.NewValidationError("addr", addr, "invalid port")
	}
	return host, port, nil
}
