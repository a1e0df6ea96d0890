// Package cli implements the catalog command-line client. It runs the same
// filter, sort, pagination and export code as the web table against the
// remote product API.
package cli

import (
	"log/slog"
	"time"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
	"github.com/JonMunkholm/catalog-admin/internal/config"
	"github.com/JonMunkholm/catalog-admin/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagAPIURL    string
	flagLogLevel  string
	flagLogFormat string
	flagTimeout   time.Duration

	logger *slog.Logger
	api    *catalog.Client
)

// NewRootCmd creates the root cobra command for the catalog CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and edit the product catalog",
		Long:  "catalog lists, searches, edits and exports products from the remote product API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cat, err := config.LoadCatalog()
			if err != nil {
				return err
			}
			// Flags win over the environment.
			if cmd.Flags().Changed("api-url") {
				cat.APIURL = flagAPIURL
			}
			if cmd.Flags().Changed("timeout") {
				cat.Timeout = flagTimeout
			}
			if err := cat.Validate(); err != nil {
				return err
			}

			logger = logging.New(cmd.ErrOrStderr(), flagLogLevel, flagLogFormat)
			api = catalog.New(cat.APIURL, cat.Timeout, catalog.WithLogger(logger))
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Product API URL (default from CATALOG_API_URL or API_URL)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Timeout for each API call (default from CATALOG_API_TIMEOUT)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newCreateCmd(),
		newUpdateCmd(),
		newExportCmd(),
	)

	return root
}
