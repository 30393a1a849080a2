package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StderrOnly(t *testing.T) {
	log, err := New("info", "")
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("hello")
}

func TestNew_WritesJSONFileWhenDirGiven(t *testing.T) {
	dir := t.TempDir()

	log, err := New("debug", dir)
	require.NoError(t, err)
	log.Info("structured line")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "flashsale.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "structured line")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, err := New("not-a-level", "")
	require.NoError(t, err)
	require.NotNil(t, log)
}
