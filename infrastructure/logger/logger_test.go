package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_CallerFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, Configure("json", "info"))

	GetLogger().WithField("query", "5 minutes 0 seconds").Info("Found videos")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Found videos", entry["msg"])
	assert.Equal(t, "5 minutes 0 seconds", entry["query"])
	assert.Contains(t, entry["function"], "TestGetLogger_CallerFields")
	assert.Contains(t, entry["file"], "logger_test.go")
}

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	require.NoError(t, Configure("text", "warn"))
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, logger.Formatter)

	GetLogger().Info("hidden")
	assert.Empty(t, buf.String())

	require.Error(t, Configure("xml", ""))
	require.Error(t, Configure("", "loud"))
	require.NoError(t, Configure("json", "info"))
}
