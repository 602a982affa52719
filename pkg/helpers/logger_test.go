package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "devcamper", "production")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "devcamper", entry["app"])
	assert.Equal(t, "production", entry["env"])
}

func TestNewLogger_Development(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "devcamper", "development")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "logger initialized")
}

func TestLogError_FlattensOopsContext(t *testing.T) {
	logger, hook := test.NewNullLogger()
	err := oops.With("operation", "consume reset token").Wrap(errors.New("conn reset"))

	LogError(logger, "request failed", err, logrus.Fields{"request_id": "r-1"})

	require.Len(t, hook.Entries, 1)
	e := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, e.Level)
	assert.Equal(t, "consume reset token", e.Data["operation"])
	assert.Equal(t, "r-1", e.Data["request_id"])
	assert.Contains(t, e.Data["error"], "conn reset")
}
