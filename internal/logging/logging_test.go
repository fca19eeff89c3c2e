package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"opennoution/internal/logging"
)

func TestLog_Writer(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logging.New().FromWriter(buff).Make()
	require.NoError(t, err)
	require.Equal(t, 0, buff.Len())

	log.Logger.Info().Str("page", "Notes").Msg("saved")
	require.Contains(t, buff.String(), `"page":"Notes"`)
	require.Contains(t, buff.String(), `"message":"saved"`)
	require.NoError(t, log.Close())
}

func TestLog_Level(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	log, err := logging.New().FromWriter(buff).WithLevel("warn").Make()
	require.NoError(t, err)

	log.Logger.Info().Msg("hidden")
	require.Equal(t, 0, buff.Len())

	log.Logger.Warn().Msg("shown")
	require.Contains(t, buff.String(), "shown")
}

func TestLog_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	log, err := logging.New().FromPath(path).Make()
	require.NoError(t, err)

	log.Logger.Error().Msg("to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "to file")
}
