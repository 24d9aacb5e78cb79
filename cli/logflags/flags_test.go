package logflags_test

import (
	"flag"
	"testing"

	"github.com/coraldb/reef/cli/logflags"
	"github.com/coraldb/reef/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	var f logflags.Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, "stderr", f.Config.Path)
	assert.Equal(t, logger.FileModeTruncate, f.Config.Mode)
	assert.Equal(t, zap.InfoLevel, f.Config.Level)
	assert.False(t, f.Config.DevMode)
}

func TestParse(t *testing.T) {
	var f logflags.Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-log.level=warn",
		"-log.path=/dev/null",
		"-log.filemode=rotate",
		"-log.devmode",
	}))
	assert.Equal(t, zap.WarnLevel, f.Config.Level)
	assert.Equal(t, "/dev/null", f.Config.Path)
	assert.Equal(t, logger.FileModeRotate, f.Config.Mode)
	assert.True(t, f.Config.DevMode)

	log, err := f.Open()
	require.NoError(t, err)
	log.Info("discarded")
}
