package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/farxc/fastfood_minwage/internal/logger"
	"github.com/farxc/fastfood_minwage/internal/survey"
	"github.com/farxc/fastfood_minwage/internal/survey/surveytest"
	"github.com/farxc/fastfood_minwage/internal/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeExtract puts a small whitespace extract at dir/public.dat.
func writeExtract(t *testing.T, dir string) string {
	t.Helper()
	lines := []string{
		surveytest.Line(surveytest.Store(1, "1", "4.25")),
		surveytest.Line(surveytest.Store(2, "1", "5.00").With(surveytest.Fields{"EMPFT2": "12", "CHAINr": "2"})),
		surveytest.Line(surveytest.Store(3, "0", "4.50").With(surveytest.Fields{"EMPPT2": "8", "CHAINr": "3"})),
		surveytest.Line(surveytest.Store(4, "0", "5.00").With(surveytest.Fields{"CHAINr": "4"})),
	}
	path := filepath.Join(dir, survey.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(surveytest.Extract(lines...)), 0o644))
	return path
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("DATA_FORMAT", "fixed")
	t.Setenv("OUTPUT_DIR", "out")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORKERS", "2")

	cfg := ConfigFromEnv()
	assert.Equal(t, Config{DataDir: "/srv/data", Format: "fixed", OutputDir: "out", LogLevel: "debug", Workers: 2}, cfg)
}

func TestConfigDefaults(t *testing.T) {
	for _, key := range []string{"DATA_DIR", "DATA_FORMAT", "OUTPUT_DIR", "LOG_LEVEL", "WORKERS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg := ConfigFromEnv()
	assert.Equal(t, "whitespace", cfg.Format)
	assert.Equal(t, "tables", cfg.OutputDir)
	assert.Equal(t, 4, cfg.Workers)
}

func TestRunTablePrintsAndWrites(t *testing.T) {
	dataDir := t.TempDir()
	writeExtract(t, dataDir)
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("DATA_FORMAT", "whitespace")
	t.Setenv("OUTPUT_DIR", t.TempDir())

	t.Run("default output path", func(t *testing.T) {
		var stdout bytes.Buffer
		code := RunTable(3, nil, &stdout, logger.Discard())
		require.Equal(t, 0, code)

		content, err := os.ReadFile(tables.OutputPath(os.Getenv("OUTPUT_DIR"), 3))
		require.NoError(t, err)
		assert.Equal(t, stdout.String(), string(content))
		assert.True(t, strings.HasPrefix(stdout.String(), "**TABLE 3-"))
	})

	t.Run("explicit output path", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "custom", "t4.md")
		var stdout bytes.Buffer
		code := RunTable(4, []string{out}, &stdout, logger.Discard())
		require.Equal(t, 0, code)
		_, err := os.Stat(out)
		assert.NoError(t, err)
	})
}

func TestRunTableFailures(t *testing.T) {
	t.Run("unknown table", func(t *testing.T) {
		assert.Equal(t, 1, RunTable(8, nil, &bytes.Buffer{}, logger.Discard()))
	})

	t.Run("extract not found", func(t *testing.T) {
		t.Setenv("DATA_DIR", t.TempDir())
		var logs bytes.Buffer
		code := RunTable(2, nil, &bytes.Buffer{}, logger.New(logger.LevelError, &logs))
		assert.Equal(t, 1, code)
		assert.Contains(t, logs.String(), "Extract not found")
	})

	t.Run("output not writable", func(t *testing.T) {
		dataDir := t.TempDir()
		writeExtract(t, dataDir)
		t.Setenv("DATA_DIR", dataDir)

		// A regular file where the output directory should be.
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
		code := RunTable(2, []string{filepath.Join(blocker, "table2.md")}, &bytes.Buffer{}, logger.Discard())
		assert.Equal(t, 1, code)
	})
}

func TestLoadRecords(t *testing.T) {
	path := writeExtract(t, t.TempDir())

	recs, got, err := LoadRecords(Config{DataPath: path, Format: "whitespace"}, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Len(t, recs, 4)

	_, _, err = LoadRecords(Config{DataPath: path, Format: "xlsx"}, logger.Discard())
	assert.ErrorContains(t, err, "unknown extract format")

	missing := filepath.Join(t.TempDir(), "nope.dat")
	_, _, err = LoadRecords(Config{DataPath: missing}, logger.Discard())
	var nf *survey.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{missing}, nf.Tried)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunBatch(t *testing.T) {
	path := writeExtract(t, t.TempDir())
	outDir := t.TempDir()
	derived := filepath.Join(t.TempDir(), "derived", "stores.csv")
	checkPath := filepath.Join(t.TempDir(), "check", "check.md")

	results, err := RunBatch(context.Background(), Batch{
		Config:  Config{DataPath: path, Format: "whitespace", OutputDir: outDir, Workers: 2},
		Tables:  "4,2",
		Derived: derived,
		Check:   checkPath,
	}, logger.Discard())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Job.Entry.Number)
	assert.Equal(t, 4, results[1].Job.Entry.Number)

	for _, n := range []int{2, 4} {
		_, err := os.Stat(tables.OutputPath(outDir, n))
		assert.NoError(t, err)
	}

	csv, err := os.ReadFile(derived)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	assert.Len(t, lines, 5)

	report, err := os.ReadFile(checkPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(report), "**DATA CHECK-SUMMARY**"))
	assert.Contains(t, string(report), "DATA CHECK-CLOSED STORES")
}

func TestRunBatchCheckNotWritable(t *testing.T) {
	path := writeExtract(t, t.TempDir())
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := RunBatch(context.Background(), Batch{
		Config: Config{DataPath: path, Format: "whitespace", OutputDir: t.TempDir()},
		Tables: "2",
		Check:  filepath.Join(blocker, "check.md"),
	}, logger.Discard())
	assert.ErrorContains(t, err, "write data check")
}

func TestRunBatchRejectsBadSelection(t *testing.T) {
	path := writeExtract(t, t.TempDir())
	_, err := RunBatch(context.Background(), Batch{
		Config: Config{DataPath: path, OutputDir: t.TempDir()},
		Tables: "1",
	}, logger.Discard())
	assert.ErrorContains(t, err, "no table 1")
}
