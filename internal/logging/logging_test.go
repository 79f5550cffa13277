package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New("loud", "")
		assert.Error(t, err)
	})

	t.Run("tees into log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sshlens.log")
		log, err := New("info", path)
		require.NoError(t, err)

		log.Info("analysis complete")
		log.Debug("filtered out")
		_ = log.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"analysis complete"`)
		assert.NotContains(t, string(data), "filtered out")
	})
}
