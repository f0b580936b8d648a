package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("Development Debug", func(t *testing.T) {
		log, err := New(false, "debug")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("Production Defaults To Info", func(t *testing.T) {
		log, err := New(true, "")
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})

	t.Run("Unknown Level", func(t *testing.T) {
		_, err := New(false, "chatty")
		assert.ErrorContains(t, err, "invalid log level")
	})
}
