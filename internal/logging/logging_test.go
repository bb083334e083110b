package logging

import (
	"bytes"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelWarn, ParseLevel(""))
	assert.Equal(t, log.LevelWarn, ParseLevel("loud"))
	assert.Equal(t, log.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, log.LevelInfo, ParseLevel("info"))
	assert.Equal(t, log.LevelError, ParseLevel("error"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	h := log.NewHelper(New(&buf, "warn", false))

	h.Debug("hidden")
	h.Info("hidden too")
	assert.Empty(t, buf.String())

	h.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "app=taskpad")
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	h := log.NewHelper(New(&buf, "error", true))

	h.Debugw("msg", "task added", "id", "t1")
	assert.Contains(t, buf.String(), "task added")
	assert.Contains(t, buf.String(), "id=t1")
}
