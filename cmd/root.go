// Package cmd implements the command-line interface for cardcrawl.
// It provides the root command and subcommands for running catalog
// item imports.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdbackfill "github.com/spellforge/cardcrawl/cmd/backfill"
	cmdimporter "github.com/spellforge/cardcrawl/cmd/importer"
	cmdlinks "github.com/spellforge/cardcrawl/cmd/links"
	cmdscheduler "github.com/spellforge/cardcrawl/cmd/scheduler"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the cardcrawl CLI.
	rootCmd = &cobra.Command{
		Use:   "cardcrawl",
		Short: "Catalog item importer for the card catalog API",
		Long: `cardcrawl crawls a game item catalog, extracts and classifies
item fields, and uploads normalized records to the card catalog API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	// Initialize configuration
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Execute the root command with a context cancelled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cardcrawl version %s\n", viper.GetString("app.version"))
		},
	})

	// Add subcommands
	rootCmd.AddCommand(cmdimporter.Command())
	rootCmd.AddCommand(cmdlinks.Command())
	rootCmd.AddCommand(cmdbackfill.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading BEFORE setting defaults
	// so environment variables take precedence over defaults
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; defaults and environment variables carry
	// a run without one.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindCommandLineFlags(); err != nil {
		return err
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("failed to bind config flag: %w", err)
	}
	return nil
}

// bindEnvVars maps environment variables to config keys. Credentials
// come from the environment only; they never live in the config file.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment": {"APP_ENV"},
		"app.debug":       {"APP_DEBUG"},
		"logger.level":    {"LOG_LEVEL"},
		"logger.encoding": {"LOG_FORMAT"},
		"api.base_url":    {"CARD_API_URL"},
		"api.username":    {"CARD_API_USERNAME"},
		"api.password":    {"CARD_API_PASSWORD"},
		"api.email":       {"CARD_API_EMAIL"},
	}

	for key, envVars := range bindings {
		if err := viper.BindEnv(append([]string{key}, envVars...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return nil
}

// setupDevelopmentLogging configures development logging settings based
// on environment and debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"name":        "cardcrawl",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "json",
		"output_paths": []string{"stdout"},
	})

	// Crawl defaults tuned for the dnd.su item catalog
	viper.SetDefault("crawl", map[string]any{
		"index_url_template": "https://dnd.su/items/?page=%d",
		"item_path_pattern":  "/items/",
		"start_page":         1,
		"max_pages":          10,
		"max_items":          50,
		"item_delay":         "1s",
		"page_delay":         "2s",
		"request_timeout":    "30s",
		"user_agent":         "cardcrawl/1.0 (+https://github.com/spellforge/cardcrawl)",
	})

	// Card catalog API defaults; credentials come from the environment
	viper.SetDefault("api", map[string]any{
		"base_url":     "http://127.0.0.1:8080/api/v1",
		"username":     "dnd_importer",
		"email":        "importer@localhost",
		"display_name": "D&D Importer",
		"source":       "D&D 5e Official",
		"upload_delay": "500ms",
		"list_limit":   1000,
	})

	viper.SetDefault("taxonomy", map[string]any{
		"path": "weapon_types.json",
	})

	// Nightly import at 03:00
	viper.SetDefault("schedule", map[string]any{
		"cron": "0 3 * * *",
	})
}
