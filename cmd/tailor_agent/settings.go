package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-tailor/internal/artifacts"
	"github.com/jonathan/application-tailor/internal/assembly"
	"github.com/jonathan/application-tailor/internal/config"
	"github.com/jonathan/application-tailor/internal/db"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/observability"
	"github.com/jonathan/application-tailor/internal/pipeline"
	"github.com/jonathan/application-tailor/internal/rendering"
)

var (
	configPath  string
	verbose     bool
	databaseURL string
	sqlitePath  string
	apiKey      string
	chromePath  string
	outputDir   string
	logFormat   string

	// settings holds the merged configuration of the current invocation.
	settings config.Config
	logger   *slog.Logger
)

func init() {
	flags := rootCmd.PersistentFlags()
	// Config file flag (processed first)
	flags.StringVar(&configPath, "config", "", "Path to a JSON or TOML config file (values can be overridden by other flags)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	flags.StringVar(&sqlitePath, "sqlite", "", "SQLite database file used when no PostgreSQL URL is set")
	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	flags.StringVar(&apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	flags.StringVar(&chromePath, "chrome", "", "Chrome/Chromium binary (optional, defaults to CHROME_PATH env var)")
	flags.StringVar(&outputDir, "out-dir", "", "Directory for rendered artifacts when no S3 bucket is configured")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// loadSettings merges config file, flags, defaults and environment into settings.
func loadSettings(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = sqlitePath
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("chrome") {
		cfg.ChromePath = chromePath
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}

	// Step 3: Apply defaults for unset values, then the environment
	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return err
	}
	settings = cfg

	if settings.LogFormat == "json" {
		logger = observability.NewJSONLogger(cmd.ErrOrStderr(), settings.Verbose)
	} else {
		logger = observability.NewLogger(cmd.ErrOrStderr(), settings.Verbose)
	}
	slog.SetDefault(logger)

	if settings.Verbose && configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}
	return nil
}

// openStore connects to PostgreSQL when a URL is configured and to SQLite otherwise.
func openStore(ctx context.Context) (db.Store, error) {
	store, err := db.Open(ctx, settings.DatabaseURL, settings.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// newRunner builds the pipeline runner. Generation needs an API key; commands that only
// read or edit stored documents pass withLLM false.
func newRunner(ctx context.Context, cmd *cobra.Command, withLLM bool) (*pipeline.Runner, func(), error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	var assembler *assembly.Assembler
	var client llm.Client
	if withLLM {
		if settings.APIKey == "" {
			_ = store.Close()
			return nil, nil, fmt.Errorf("API key is required (use --api-key or set %s)", config.EnvAPIKey)
		}
		client, err = llm.NewClient(ctx, settings.LLMConfig(), settings.APIKey)
		if err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		assembler = assembly.New(client,
			assembly.WithConcurrency(settings.Concurrency),
			assembly.WithLogger(logger))
	}

	runner := pipeline.NewRunner(store, assembler)
	runner.Logger = logger
	if settings.Verbose {
		runner.Printer = observability.NewPrinter(cmd.ErrOrStderr())
	}

	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
		_ = store.Close()
	}
	return runner, cleanup, nil
}

func newRenderer() *rendering.Renderer {
	return rendering.NewRenderer(rendering.NewChromeBrowser(settings.ChromePath))
}

// newSink stores artifacts in S3 when a bucket is configured and in the output directory otherwise.
func newSink(ctx context.Context) (artifacts.Sink, error) {
	if settings.S3 != nil {
		sink, err := artifacts.NewS3Sink(ctx, *settings.S3)
		if err != nil {
			return nil, err
		}
		return sink, nil
	}
	return artifacts.NewDirSink(settings.OutputDir), nil
}
