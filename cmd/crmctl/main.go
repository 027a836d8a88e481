package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meridian-vc/crm-engine/pkg/config"
	"github.com/meridian-vc/crm-engine/pkg/dealcloud"
	"github.com/meridian-vc/crm-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	verbose bool

	logger *zap.Logger
	cfg    *config.Config

	recordService services.RecordService
	resolver      services.EntityResolver
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "crmctl - DealCloud record creation with duplicate resolution",
	Long: `crmctl creates companies and contacts in DealCloud.

Every create first resolves the record against existing CRM data with fuzzy
name matching, so re-running a create is safe: an existing record is returned
instead of a duplicate being written.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real deployments configure via the environment
		_ = godotenv.Load()

		logConfig := zap.NewProductionConfig()
		if verbose {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = logConfig.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = config.Load(Version)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		wire()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// wire assembles the client stack: credential provider, transport, schema
// catalog, data client, user directory, resolver, mapper, synthesizer.
func wire() {
	timeout := time.Duration(cfg.DealCloud.TimeoutSeconds) * time.Second

	credentials := dealcloud.NewTokenProvider(
		cfg.DealCloud.BaseURL,
		cfg.DealCloud.ClientID,
		cfg.DealCloud.ClientSecret,
		cfg.DealCloud.Scope,
		timeout,
		logger,
	)
	transport := dealcloud.NewClient(cfg.DealCloud.BaseURL, credentials, timeout, logger)
	schema := dealcloud.NewSchemaCatalog(transport, logger)
	data := dealcloud.NewDataClient(transport, logger)
	users := dealcloud.NewUserDirectory(transport, logger)

	resolver = services.NewEntityResolver(schema, data, services.ResolverConfig{
		Threshold:         cfg.Match.Threshold,
		CompanyNameField:  cfg.Match.CompanyNameField,
		ContactEmailField: cfg.Match.ContactEmailField,
	}, logger)
	refs := services.NewReferenceResolver(data, logger)
	mapper := services.NewFieldValueMapper(users, refs, logger)
	recordService = services.NewRecordService(schema, data, resolver, mapper, logger)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(createCompanyCmd)
	rootCmd.AddCommand(createContactCmd)
	rootCmd.AddCommand(findCompanyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
