package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathlab/config"
	"github.com/katalvlaran/pathlab/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNew_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	c := config.Default().Logging
	c.Format = "json"
	c.Level = "warn"

	logger, closer := logging.New(c, &buf)
	defer closer.Close()

	logger.Info("dropped")
	logger.Warn("kept", "id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, float64(7), rec["id"])
}

func TestNew_TextIsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(config.LogConfig{Level: "info"}, &buf)
	logger.Info("hello", "k", "v")

	assert.Contains(t, buf.String(), "msg=hello k=v")
}

func TestNew_Logfile(t *testing.T) {
	var buf bytes.Buffer
	c := config.Default().Logging
	c.Logfile = filepath.Join(t.TempDir(), "pathlab.log")

	logger, closer := logging.New(c, &buf)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(c.Logfile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=\"to file\"")
	assert.Zero(t, buf.Len())
}
