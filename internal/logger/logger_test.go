package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	New("production", &buf).Info("server started", "addr", ":3000")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "server started", line["msg"])
	assert.Equal(t, ":3000", line["addr"])
}

func TestDevelopmentLogsDebugText(t *testing.T) {
	var buf bytes.Buffer
	New("development", &buf).Debug("health check", "body", "ok")
	assert.True(t, strings.Contains(buf.String(), `msg="health check"`), buf.String())
}
