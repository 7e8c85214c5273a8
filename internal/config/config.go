package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ehr/healthgen/internal/sink"
)

// Sink kinds.
const (
	SinkPostgres     = "postgres"
	SinkPostgresCopy = "postgres-copy"
	SinkSQL          = "sql"
	SinkScript       = "script"
	SinkXLSX         = "xlsx"
)

type Config struct {
	Env             string `mapstructure:"ENV"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	Port            string `mapstructure:"PORT"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32  `mapstructure:"DB_MIN_CONNS"`
	DBSchema        string `mapstructure:"DB_SCHEMA"`
	WarehouseSchema string `mapstructure:"WAREHOUSE_SCHEMA"`
	SQLDialect      string `mapstructure:"SQL_DIALECT"`
	Sink            string `mapstructure:"SINK"`
	OutputPath      string `mapstructure:"OUTPUT_PATH"`

	Seed             uint64 `mapstructure:"SEED"`
	PatientRounds    int    `mapstructure:"PATIENT_ROUNDS"`
	VisitsPerPatient int    `mapstructure:"VISITS_PER_PATIENT"`
	MaxCodeAttempts  int    `mapstructure:"MAX_CODE_ATTEMPTS"`
	TimeStartYear    int    `mapstructure:"TIME_START_YEAR"`
	TimeEndYear      int    `mapstructure:"TIME_END_YEAR"`
	ReferenceDir     string `mapstructure:"REFERENCE_DIR"`

	RedisURL  string `mapstructure:"REDIS_URL"`
	LedgerKey string `mapstructure:"LEDGER_KEY"`
}

var keys = []string{
	"ENV", "LOG_LEVEL", "PORT",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_SCHEMA", "WAREHOUSE_SCHEMA",
	"SQL_DIALECT", "SINK", "OUTPUT_PATH",
	"SEED", "PATIENT_ROUNDS", "VISITS_PER_PATIENT", "MAX_CODE_ATTEMPTS",
	"TIME_START_YEAR", "TIME_END_YEAR", "REFERENCE_DIR",
	"REDIS_URL", "LEDGER_KEY",
}

// Load reads .env, if present, and the environment. Flags override the
// result in cmd.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8000")
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DB_SCHEMA", "health")
	v.SetDefault("WAREHOUSE_SCHEMA", "warehouse")
	v.SetDefault("SQL_DIALECT", "postgres")
	v.SetDefault("SINK", SinkPostgres)
	v.SetDefault("OUTPUT_PATH", "./out")
	v.SetDefault("SEED", 0)
	v.SetDefault("PATIENT_ROUNDS", 1)
	v.SetDefault("VISITS_PER_PATIENT", 100)
	v.SetDefault("MAX_CODE_ATTEMPTS", 1_000_000)
	v.SetDefault("TIME_START_YEAR", 2020)
	v.SetDefault("TIME_END_YEAR", 2050)
	v.SetDefault("LEDGER_KEY", "healthgen:national_codes")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// NeedsDatabase reports whether the selected sink writes to a live store.
func (c *Config) NeedsDatabase() bool {
	switch c.Sink {
	case SinkPostgres, SinkPostgresCopy, SinkSQL:
		return true
	}
	return false
}

// Dialect returns the parsed SQL_DIALECT.
func (c *Config) Dialect() (sink.Dialect, error) {
	return sink.ParseDialect(c.SQLDialect)
}

// Level returns the parsed LOG_LEVEL.
func (c *Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.LogLevel)
}

// Validate checks every setting a load run depends on.
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkPostgres, SinkPostgresCopy, SinkSQL, SinkScript, SinkXLSX:
	default:
		return fmt.Errorf("SINK must be one of postgres, postgres-copy, sql, script, xlsx; got %q", c.Sink)
	}
	if c.NeedsDatabase() && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for SINK=%s", c.Sink)
	}
	d, err := c.Dialect()
	if err != nil {
		return err
	}
	if (c.Sink == SinkPostgres || c.Sink == SinkPostgresCopy) && d != sink.Postgres {
		return fmt.Errorf("SINK=%s requires SQL_DIALECT=postgres", c.Sink)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS %d exceeds DB_MAX_CONNS %d", c.DBMinConns, c.DBMaxConns)
	}
	return c.ValidateGeneration()
}

// ValidateGeneration checks only the settings that size a run, for commands
// that never open a sink.
func (c *Config) ValidateGeneration() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.PatientRounds < 1 {
		return fmt.Errorf("PATIENT_ROUNDS must be at least 1, got %d", c.PatientRounds)
	}
	if c.VisitsPerPatient < 0 {
		return fmt.Errorf("VISITS_PER_PATIENT must not be negative, got %d", c.VisitsPerPatient)
	}
	if c.MaxCodeAttempts < 1 {
		return fmt.Errorf("MAX_CODE_ATTEMPTS must be at least 1, got %d", c.MaxCodeAttempts)
	}
	if c.TimeStartYear > c.TimeEndYear {
		return fmt.Errorf("TIME_START_YEAR %d is after TIME_END_YEAR %d", c.TimeStartYear, c.TimeEndYear)
	}
	return nil
}
