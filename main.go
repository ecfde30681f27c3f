package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pnguncrush/converter"
	"pnguncrush/core"
	"pnguncrush/db"
	"pnguncrush/logging"
	"pnguncrush/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Service management commands (install/uninstall/...) exit early.
	if HandleServiceCommand(os.Args) {
		return core.ExitCodeSuccess
	}

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		// Use fmt here since logger isn't initialized yet
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	cfg := core.LoadConfig()

	var configPath string
	flag.StringVar(&configPath, "config", "pnguncrush.yaml", "optional YAML config file")
	inputDir := flag.String("in", "", "input directory (overrides PNGUNCRUSH_INPUT_DIR)")
	outputDir := flag.String("out", "", "output directory (overrides PNGUNCRUSH_OUTPUT_DIR)")
	watch := flag.Bool("watch", false, "watch the input directory instead of a one-shot run")
	recent := flag.Int("recent", 0, "print the N most recent history records and exit")
	flag.Parse()

	if err := core.ApplyConfigFile(cfg, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return core.ExitCodeError
	}
	// Flags win over both env and config file.
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *watch {
		cfg.Watch = true
	}
	if flag.NArg() > 0 && cfg.InputDir == "" {
		cfg.InputDir = flag.Arg(0)
	}

	if *recent > 0 {
		return printRecent(cfg, *recent)
	}

	if err := cfg.Validate(); err != nil {
		printConfigError(err)
		return core.ExitCodeError
	}

	logger, err := logging.NewLogger(cfg.DevMode, cfg.LogFilePath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}

	manager := shutdown.NewManager(logger.Zap())
	manager.Register("logger", 5, func(ctx context.Context) error {
		// Sync errors on closed stdout are expected during teardown.
		logger.Sync()
		return nil
	})
	defer manager.Shutdown()

	logger.Info("Configuration loaded",
		zap.String("input_dir", cfg.InputDir),
		zap.String("output_dir", cfg.OutputDir),
		zap.Bool("watch", cfg.Watch),
		zap.Duration("watch_interval", cfg.WatchInterval),
		zap.Int("max_concurrent", cfg.MaxConcurrent),
		zap.Int64("max_file_size", cfg.MaxFileSize),
		zap.Bool("history", cfg.HistoryEnabled),
		zap.Bool("thumbnails", cfg.Thumbnails),
		zap.Bool("dev_mode", cfg.DevMode),
	)

	var repo *db.Repository
	if cfg.HistoryEnabled {
		database, err := db.Open(cfg.DatabasePath, "")
		if err != nil {
			logger.Error("Failed to open history database", zap.Error(err))
			return core.ExitCodeError
		}
		repo = db.NewRepository(database)
		manager.Register("database", 30, func(ctx context.Context) error {
			return database.Close()
		})
		logger.Info("Conversion history enabled", zap.String("path", database.Path()))
	}

	processor := converter.NewProcessor(cfg, logger, repo)
	manager.Start()

	if cfg.Watch {
		return runWatch(manager, cfg, logger, processor)
	}
	return runBatch(manager, cfg, logger, processor)
}

// runBatch converts the input directory once and prints a report. An
// interrupt cancels the worker pool; files already in flight finish.
func runBatch(manager *shutdown.Manager, cfg *core.Config, logger *logging.Logger, processor *converter.Processor) int {
	start := time.Now()
	results, err := processor.ProcessDir(manager.Context(), cfg.InputDir)
	if err != nil {
		logger.Error("Batch run failed", zap.Error(err))
		return core.ExitCodeError
	}

	report := converter.NewReport(results, time.Since(start))
	report.Print(os.Stdout)

	if code := manager.ExitCode(); code != core.ExitCodeSuccess {
		return code
	}
	if !report.Success() {
		return core.ExitCodeError
	}
	return core.ExitCodeSuccess
}

// runWatch polls the input directory until interrupted.
func runWatch(manager *shutdown.Manager, cfg *core.Config, logger *logging.Logger, processor *converter.Processor) int {
	watcher := converter.NewWatcher(cfg, logger, processor)
	go watcher.Start(manager.Context())
	<-watcher.Done()

	code := manager.ExitCode()
	logger.Info("Goodbye", zap.String("exit", core.ExitCodeName(code)))
	return code
}

// printRecent lists the newest history records with per-status totals.
func printRecent(cfg *core.Config, n int) int {
	database, err := db.Open(cfg.DatabasePath, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return core.ExitCodeError
	}
	defer database.Close()
	repo := db.NewRepository(database)

	ctx := context.Background()
	records, err := repo.RecentConversions(ctx, n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return core.ExitCodeError
	}
	for _, rec := range records {
		fmt.Printf("%s  %-9s  %s", rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Status, rec.SourcePath)
		if rec.Status == db.StatusConverted {
			fmt.Printf("  %dx%d  %dms", rec.Width, rec.Height, rec.DurationMS)
		}
		if rec.ErrorMessage != "" {
			fmt.Printf("  (%s)", rec.ErrorMessage)
		}
		fmt.Println()
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return core.ExitCodeError
	}
	fmt.Printf("\nTotal: %d converted, %d skipped, %d failed\n",
		counts[db.StatusConverted], counts[db.StatusSkipped], counts[db.StatusError])
	return core.ExitCodeSuccess
}

// printConfigError renders a configuration problem with its suggested fix.
func printConfigError(err error) {
	if cfgErr, ok := core.AsConfigError(err); ok {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Configuration error [%s]\n", cfgErr.Code)
		fmt.Fprintf(os.Stderr, "  %s\n", cfgErr.Message)
		if cfgErr.Action != "" {
			color.New(color.FgYellow).Fprintf(os.Stderr, "  → %s\n", cfgErr.Action)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
