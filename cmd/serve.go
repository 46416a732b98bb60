package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/shiftgrid/internal/api"
	"github.com/huangsam/shiftgrid/internal/contract"
)

const defaultTokenTTL = 24 * time.Hour

// serveCmd starts the REST API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve ranges, days, streaks, windows and the grid over HTTP",
	Long: `Start a JSON REST API on --api-addr.

Routes:
  GET /health
  GET /api/v1/ranges
  GET /api/v1/days
  GET /api/v1/streaks
  GET /api/v1/windows
  GET /api/v1/grid

Every /api/v1 route accepts the query parameters range, pivot, selection, site
and limit. When --api-secret is set, those routes require an HS256 bearer token
(see 'shiftgrid serve token').

Examples:
  # Serve on the default address
  shiftgrid serve

  # Require tokens (secret from the environment)
  SHIFTGRID_API_SECRET=... shiftgrid serve --api-addr :8080`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return api.StartAPIServer(ctx, cfg, cacheManager)
	},
}

// serveTokenCmd issues a bearer token for the REST API.
var serveTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the REST API",
	Long: `Sign an HS256 token with --api-secret that the REST API accepts.

Examples:
  SHIFTGRID_API_SECRET=... shiftgrid serve token --subject dashboard --ttl 720h`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		token, err := api.IssueToken(viper.GetString("api-secret"), viper.GetString("subject"), viper.GetDuration("ttl"))
		if err != nil {
			contract.LogFatal("Cannot issue token", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, token)
	},
}
