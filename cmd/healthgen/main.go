package main

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/healthgen/internal/config"
	"github.com/ehr/healthgen/internal/export"
	"github.com/ehr/healthgen/internal/generator"
	"github.com/ehr/healthgen/internal/platform/db"
	"github.com/ehr/healthgen/internal/platform/ledger"
	"github.com/ehr/healthgen/internal/platform/middleware"
	"github.com/ehr/healthgen/internal/preview"
	"github.com/ehr/healthgen/internal/reference"
	"github.com/ehr/healthgen/internal/sink"
	"github.com/ehr/healthgen/internal/timedim"
)

const (
	previewTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "healthgen",
		Short:        "Synthetic healthcare dataset generator",
		SilenceUsage: true,
	}

	root.AddCommand(generateCmd())
	root.AddCommand(timedimCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(serveCmd())
	return root
}

func addSizingFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("seed", 0, "random seed, 0 picks one")
	cmd.Flags().Int("rounds", 0, "patient rounds over the name product")
	cmd.Flags().Int("visits-per-patient", 0, "visits per patient")
	cmd.Flags().String("reference-dir", "", "directory with reference JSON catalogs")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("sink", "", "postgres, postgres-copy, sql, script or xlsx")
	cmd.Flags().String("output", "", "output directory for file sinks")
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the healthcare dataset and load it into the sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, true)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cfg, newLogger(cfg))
		},
	}
	addSizingFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func timedimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timedim",
		Short: "Generate the Gregorian/Persian time dimension and load it into the sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, true)
			if err != nil {
				return err
			}
			return runTimeDim(cmd.Context(), cfg, newLogger(cfg))
		},
	}
	cmd.Flags().Int("start-year", 0, "first calendar year")
	cmd.Flags().Int("end-year", 0, "last calendar year")
	addOutputFlags(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate the dataset and write it as parquet files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, false)
			if err != nil {
				return err
			}
			withTime, _ := cmd.Flags().GetBool("with-time")
			return runExport(cmd.Context(), cfg, newLogger(cfg), withTime)
		},
	}
	addSizingFlags(cmd)
	cmd.Flags().String("output", "", "output directory")
	cmd.Flags().Bool("with-time", false, "also export the time dimension")
	cmd.Flags().Int("start-year", 0, "first calendar year")
	cmd.Flags().Int("end-year", 0, "last calendar year")
	return cmd
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate the reference catalogs and print their sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, false)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(catalogSummary(catalog))
		},
	}
	cmd.Flags().String("reference-dir", "", "directory with reference JSON catalogs")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the preview API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cfg, newLogger(cfg))
		},
	}
}

// loadConfig reads the environment and applies any flags the user set.
// Sink settings are only validated for commands that load into a sink.
func loadConfig(cmd *cobra.Command, withSink bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)

	validate := cfg.ValidateGeneration
	if withSink {
		validate = cfg.Validate
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("rounds") {
		cfg.PatientRounds, _ = flags.GetInt("rounds")
	}
	if flags.Changed("visits-per-patient") {
		cfg.VisitsPerPatient, _ = flags.GetInt("visits-per-patient")
	}
	if flags.Changed("reference-dir") {
		cfg.ReferenceDir, _ = flags.GetString("reference-dir")
	}
	if flags.Changed("sink") {
		cfg.Sink, _ = flags.GetString("sink")
	}
	if flags.Changed("output") {
		cfg.OutputPath, _ = flags.GetString("output")
	}
	if flags.Changed("start-year") {
		cfg.TimeStartYear, _ = flags.GetInt("start-year")
	}
	if flags.Changed("end-year") {
		cfg.TimeEndYear, _ = flags.GetInt("end-year")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if lvl, err := cfg.Level(); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}
	return logger
}

func loadCatalog(cfg *config.Config) (*reference.Catalog, error) {
	if cfg.ReferenceDir != "" {
		return reference.LoadDir(cfg.ReferenceDir)
	}
	return reference.Default()
}

func catalogSummary(c *reference.Catalog) map[string]int {
	treatments := 0
	prescribing := 0
	for d, row := range c.Treatments.Descriptions {
		treatments += len(row)
		for i := range row {
			if len(c.MedicationNames(d, i)) > 0 {
				prescribing++
			}
		}
	}
	return map[string]int{
		"departments":            len(c.Departments),
		"doctors":                c.DoctorNames.Size(),
		"patients_per_round":     c.PatientNames.Size(),
		"treatment_types":        len(c.Treatments.Types),
		"treatments":             treatments,
		"prescribing_treatments": prescribing,
		"medications":            len(c.Medications.Costs),
	}
}

// resolveSeed returns seed, or a random one when seed is 0, so every run can
// be replayed from its log.
func resolveSeed(seed uint64) (uint64, error) {
	for seed == 0 {
		var b [8]byte
		if _, err := cryptorand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("draw seed: %w", err)
		}
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return seed, nil
}

func openLedger(ctx context.Context, cfg *config.Config) (generator.Ledger, func(), error) {
	if cfg.RedisURL == "" {
		return generator.NewMemoryLedger(), func() {}, nil
	}
	r, err := ledger.NewRedis(ctx, cfg.RedisURL, cfg.LedgerKey)
	if err != nil {
		return nil, nil, err
	}
	return r, func() { r.Close() }, nil
}

// openSink builds the configured sink. name names the output file of file
// sinks.
func openSink(ctx context.Context, cfg *config.Config, schema, name string) (sink.Sink, func() error, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, nil, err
	}
	if err := db.ValidateSchema(schema); err != nil {
		return nil, nil, err
	}

	switch cfg.Sink {
	case config.SinkPostgres, config.SinkPostgresCopy:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, schema, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, err
		}
		mode := sink.ModeInsert
		if cfg.Sink == config.SinkPostgresCopy {
			mode = sink.ModeCopy
		}
		return sink.NewPG(pool, schema, mode), func() error { pool.Close(); return nil }, nil

	case config.SinkSQL:
		sqlDB, err := sink.OpenSQL(ctx, dialect, cfg.DatabaseURL, int(cfg.DBMaxConns))
		if err != nil {
			return nil, nil, err
		}
		return sink.NewSQL(sqlDB, schema, dialect), sqlDB.Close, nil

	case config.SinkScript:
		if err := os.MkdirAll(cfg.OutputPath, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
		f, err := os.Create(filepath.Join(cfg.OutputPath, name+".sql"))
		if err != nil {
			return nil, nil, fmt.Errorf("create script: %w", err)
		}
		return sink.NewScript(f, schema, dialect), f.Close, nil

	case config.SinkXLSX:
		if err := os.MkdirAll(cfg.OutputPath, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
		x := sink.NewXLSX(filepath.Join(cfg.OutputPath, name+".xlsx"))
		return x, x.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown sink %q", cfg.Sink)
}

func generateDataset(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*generator.Dataset, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	seed, err := resolveSeed(cfg.Seed)
	if err != nil {
		return nil, err
	}
	codes, closeLedger, err := openLedger(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer closeLedger()

	logger.Info().
		Uint64("seed", seed).
		Int("patient_rounds", cfg.PatientRounds).
		Int("visits_per_patient", cfg.VisitsPerPatient).
		Bool("redis_ledger", cfg.RedisURL != "").
		Msg("generating dataset")

	g, err := generator.New(catalog, generator.NewSource(seed), codes, logger, generator.Options{
		PatientRounds:    cfg.PatientRounds,
		VisitsPerPatient: cfg.VisitsPerPatient,
		MaxCodeAttempts:  cfg.MaxCodeAttempts,
	})
	if err != nil {
		return nil, err
	}
	return g.Run(ctx)
}

func withRunID(logger zerolog.Logger) zerolog.Logger {
	return logger.With().Str("run_id", uuid.New().String()).Logger()
}

func runGenerate(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger = withRunID(logger)

	ds, err := generateDataset(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("generation failed")
		return err
	}

	s, closeSink, err := openSink(ctx, cfg, cfg.DBSchema, "healthgen")
	if err != nil {
		logger.Error().Err(err).Msg("failed to open sink")
		return err
	}
	if err := sink.Load(ctx, s, ds.Tables(), nil, logger); err != nil {
		closeSink()
		logger.Error().Err(err).Msg("load failed")
		return err
	}
	if err := closeSink(); err != nil {
		return fmt.Errorf("close sink: %w", err)
	}
	logger.Info().Str("sink", cfg.Sink).Msg("dataset loaded")
	return nil
}

func runTimeDim(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger = withRunID(logger)

	rows, err := timedim.Generate(cfg.TimeStartYear, cfg.TimeEndYear, timedim.PTime{})
	if err != nil {
		return err
	}
	logger.Info().
		Int("start_year", cfg.TimeStartYear).
		Int("end_year", cfg.TimeEndYear).
		Int("days", len(rows)).
		Msg("time dimension generated")

	dialect, err := cfg.Dialect()
	if err != nil {
		return err
	}
	s, closeSink, err := openSink(ctx, cfg, cfg.WarehouseSchema, "timedim")
	if err != nil {
		logger.Error().Err(err).Msg("failed to open sink")
		return err
	}

	var hook sink.PostLoadHook
	if _, ok := s.(sink.Execer); ok {
		hook = timedim.PartitionHook(rows, dialect, cfg.WarehouseSchema)
	} else {
		logger.Warn().Str("sink", cfg.Sink).Msg("sink cannot run statements, skipping partition boundaries")
	}

	if err := sink.Load(ctx, s, []sink.Table{timedim.Table(rows)}, hook, logger); err != nil {
		closeSink()
		logger.Error().Err(err).Msg("load failed")
		return err
	}
	return closeSink()
}

func runExport(ctx context.Context, cfg *config.Config, logger zerolog.Logger, withTime bool) error {
	logger = withRunID(logger)

	ds, err := generateDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}
	files, err := export.WriteParquet(cfg.OutputPath, ds)
	if err != nil {
		return err
	}
	for _, f := range files {
		logger.Info().Str("table", f.Table).Str("path", f.Path).Int("rows", f.Rows).Msg("parquet written")
	}

	if !withTime {
		return nil
	}
	rows, err := timedim.Generate(cfg.TimeStartYear, cfg.TimeEndYear, timedim.PTime{})
	if err != nil {
		return err
	}
	f, err := export.WriteTimeParquet(cfg.OutputPath, rows)
	if err != nil {
		return err
	}
	logger.Info().Str("table", f.Table).Str("path", f.Path).Int("rows", f.Rows).Msg("parquet written")
	return nil
}

// newServer wires the preview API. health may be nil when no database is
// configured.
func newServer(catalog *reference.Catalog, health db.Pinger, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if health != nil {
		e.GET("/health/db", db.HealthHandler(health))
	}

	apiV1 := e.Group("/api/v1", middleware.RequestTimeout(previewTimeout))
	svc := preview.NewService(catalog, timedim.PTime{}, logger)
	preview.NewHandler(svc).RegisterRoutes(apiV1)

	return e
}

func runServer(cfg *config.Config, logger zerolog.Logger) error {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load reference data")
	}

	ctx := context.Background()
	var health db.Pinger
	if cfg.DatabaseURL != "" {
		if cfg.Sink == config.SinkSQL {
			dialect, err := cfg.Dialect()
			if err != nil {
				logger.Fatal().Err(err).Msg("invalid SQL_DIALECT")
			}
			sqlDB, err := sink.OpenSQL(ctx, dialect, cfg.DatabaseURL, int(cfg.DBMaxConns))
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to connect to database")
			}
			defer sqlDB.Close()
			health = db.FromSQL(sqlDB)
		} else {
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to connect to database")
			}
			defer pool.Close()
			health = pool
		}
		logger.Info().Msg("connected to database")
	}

	e := newServer(catalog, health, logger)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
