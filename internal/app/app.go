// Package app wires configuration, the survey extract and the table builders
// together for the command-line entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/farxc/fastfood_minwage/internal/check"
	"github.com/farxc/fastfood_minwage/internal/derive"
	"github.com/farxc/fastfood_minwage/internal/env"
	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/render"
	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/farxc/fastfood_minwage/internal/tables"
)

type Config struct {
	// DataPath is an explicit extract path; it disables the search.
	DataPath  string
	DataDir   string
	Format    string
	OutputDir string
	LogLevel  string
	Workers   int
}

// ConfigFromEnv reads the settings shared by every command. Flags override it.
func ConfigFromEnv() Config {
	return Config{
		DataDir:   env.GetString("DATA_DIR", ""),
		Format:    env.GetString("DATA_FORMAT", "whitespace"),
		OutputDir: env.GetString("OUTPUT_DIR", "tables"),
		LogLevel:  env.GetString("LOG_LEVEL", "info"),
		Workers:   env.GetInt("WORKERS", 4),
	}
}

// Bootstrap loads an optional .env file and returns a logger at LOG_LEVEL.
func Bootstrap() *logger.Logger {
	const component = "Config"
	log.SetFlags(0)

	appLogger := &logger.Logger{MinLevel: logger.LevelInfo}
	if err := env.Load(".env"); err != nil {
		appLogger.Warn(component, "Env file ignored: error=%v", err)
	}
	appLogger.SetLogLevel(logger.ParseLevel(env.GetString("LOG_LEVEL", "info")))
	return appLogger
}

// LoadRecords locates the extract and reads it. A missing extract is a
// *survey.NotFoundError naming every path tried.
func LoadRecords(cfg Config, appLogger *logger.Logger) ([]survey.Record, string, error) {
	const component = "Loader"

	format, err := survey.ParseFormat(cfg.Format)
	if err != nil {
		return nil, "", err
	}
	path, err := survey.Locate(cfg.DataPath, cfg.DataDir)
	if err != nil {
		return nil, "", err
	}
	appLogger.Info(component, "Extract located: path=%s format=%s", path, format)

	recs, err := survey.Load(path, format, appLogger)
	if err != nil {
		return nil, path, err
	}
	return recs, path, nil
}

// RunTable builds one table for a standalone command. The optional first
// argument overrides the output file. The table is printed to stdout and
// written to the file; the result is the process exit code.
func RunTable(n int, args []string, stdout io.Writer, appLogger *logger.Logger) int {
	const component = "TableCommand"

	entry, err := tables.Lookup(n)
	if err != nil {
		appLogger.Error(component, "Unknown table: error=%v", err)
		return 1
	}
	cfg := ConfigFromEnv()
	out := tables.OutputPath(cfg.OutputDir, n)
	if len(args) > 0 && args[0] != "" {
		out = args[0]
	}
	if len(args) > 1 {
		appLogger.Warn(component, "Extra arguments ignored: args=%v", args[1:])
	}

	recs, _, err := LoadRecords(cfg, appLogger)
	if err != nil {
		LogLoadError(appLogger, component, err)
		return 1
	}

	tbl, err := entry.Build(recs, appLogger)
	if err != nil {
		appLogger.Error(component, "Table failed: table=%d error=%v", n, err)
		return 1
	}
	if err := render.Markdown(stdout, tbl); err != nil {
		appLogger.Error(component, "Failed to print table: table=%d error=%v", n, err)
		return 1
	}
	if err := tables.WriteFile(out, tbl); err != nil {
		appLogger.Error(component, "Failed to write table: table=%d path=%s error=%v", n, out, err)
		return 1
	}
	appLogger.Info(component, "Table written: table=%d path=%s", n, out)
	return 0
}

// Batch is a replication run over several tables.
type Batch struct {
	Config
	// Tables is "all" or a comma-separated list of table numbers.
	Tables string
	// Derived, when set, receives the derived dataset as CSV.
	Derived string
	// Check, when set, receives the data-check report as markdown.
	Check string
}

// RunBatch loads the extract once and builds the selected tables on the
// runner's worker pool.
func RunBatch(ctx context.Context, b Batch, appLogger *logger.Logger) ([]tables.Result, error) {
	const component = "Batch"

	entries, err := tables.Select(b.Tables)
	if err != nil {
		return nil, err
	}
	recs, path, err := LoadRecords(b.Config, appLogger)
	if err != nil {
		return nil, err
	}
	appLogger.Info(component, "Batch starting: extract=%s stores=%d tables=%d", path, len(recs), len(entries))

	if b.Derived != "" {
		if err := WriteDerived(b.Derived, recs); err != nil {
			return nil, err
		}
		appLogger.Info(component, "Derived dataset written: path=%s", b.Derived)
	}
	if b.Check != "" {
		rep, err := check.Build(recs, appLogger)
		if err != nil {
			return nil, fmt.Errorf("data check: %w", err)
		}
		if err := rep.WriteFile(b.Check); err != nil {
			return nil, fmt.Errorf("write data check: %w", err)
		}
		appLogger.Info(component, "Data check written: path=%s", b.Check)
	}

	return tables.NewRunner(recs, appLogger, b.Workers).Run(ctx, entries, b.OutputDir)
}

// WriteDerived exports the derived variables under the default policy
// (temporarily closed stores missing) to a CSV file.
func WriteDerived(path string, recs []survey.Record) error {
	rows, err := derive.DeriveAll(recs, derive.DefaultConfig(derive.TreatAsMissing))
	if err != nil {
		return fmt.Errorf("derive export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := derive.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LogLoadError reports a failed extract load, listing the paths tried when
// the extract was not found.
func LogLoadError(appLogger *logger.Logger, component string, err error) {
	var nf *survey.NotFoundError
	if errors.As(err, &nf) {
		appLogger.Error(component, "Extract not found: tried=%v", nf.Tried)
		return
	}
	appLogger.Error(component, "Failed to load extract: error=%v", err)
}
