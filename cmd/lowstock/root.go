package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GTDGit/lowstock/internal/cache"
	"github.com/GTDGit/lowstock/internal/config"
	"github.com/GTDGit/lowstock/internal/service"
	"github.com/GTDGit/lowstock/pkg/wildberries"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "lowstock",
	Short:         "Find Wildberries items whose scarcest size is almost sold out",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log upstream requests and pipeline progress")
}

// services are built per command run from the environment configuration.
type services struct {
	cfg      *config.Config
	category *service.CategoryService
	search   *service.SearchService
}

func newServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	client := wildberries.NewClient(wildberries.Config{
		SearchURL: cfg.Marketplace.SearchURL,
		DetailURL: cfg.Marketplace.DetailURL,
		Currency:  cfg.Marketplace.Currency,
		Dest:      cfg.Marketplace.Dest,
		Timeout:   cfg.Marketplace.Timeout,
	})

	return &services{
		cfg:      cfg,
		category: service.NewCategoryService(client, cache.NewMemoryCache(), cfg.Marketplace.TreeMirrors, cfg.Search.TreeCacheTTL),
		search:   service.NewSearchService(client, cfg.Search.DetailBatchSize, cfg.Marketplace.ProductURLTemplate),
	}, nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
