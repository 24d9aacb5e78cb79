package logger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coraldb/reef/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

func TestFileModeFlag(t *testing.T) {
	cases := []struct {
		in   string
		want logger.FileMode
	}{
		{"", logger.FileModeAppend},
		{"append", logger.FileModeAppend},
		{"truncate", logger.FileModeTruncate},
		{"rotate", logger.FileModeRotate},
	}
	for _, c := range cases {
		var m logger.FileMode
		require.NoError(t, m.Set(c.in))
		assert.Equal(t, c.want, m)
	}
	var m logger.FileMode
	assert.Error(t, m.Set("bogus"))
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reef.log")
	log, err := logger.New(logger.Config{
		Path:  path,
		Mode:  logger.FileModeTruncate,
		Level: zapcore.InfoLevel,
	})
	require.NoError(t, err)
	log.Info("compiled envelope", zap.Int("bytes", 42))
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "compiled envelope", rec["msg"])
	assert.Equal(t, float64(42), rec["bytes"])
}

func TestLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reef.log")
	log, err := logger.New(logger.Config{
		Path:  path,
		Mode:  logger.FileModeTruncate,
		Level: zapcore.WarnLevel,
	})
	require.NoError(t, err)
	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dropped")
	assert.Contains(t, string(b), "kept")
}

func TestAppendMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reef.log")
	for i := 0; i < 2; i++ {
		log, err := logger.New(logger.Config{
			Path:  path,
			Mode:  logger.FileModeAppend,
			Level: zapcore.InfoLevel,
		})
		require.NoError(t, err)
		log.Info("run")
		require.NoError(t, log.Sync())
	}
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), "\n"))
}

func TestConfigYAML(t *testing.T) {
	var conf logger.Config
	require.NoError(t, yaml.Unmarshal([]byte("path: stderr\nmode: rotate\n"), &conf))
	assert.Equal(t, "stderr", conf.Path)
	assert.Equal(t, logger.FileModeRotate, conf.Mode)
}
