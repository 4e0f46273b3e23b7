package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSON(t *testing.T) {
	log := logrus.New()
	require.NoError(t, Configure(log, "debug", "json"))

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.WithField("component", "history").Debug("appended")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "appended", line["msg"])
	assert.Equal(t, "history", line["component"])
	assert.Equal(t, "debug", line["level"])
}

func TestConfigure_Text(t *testing.T) {
	log := logrus.New()
	require.NoError(t, Configure(log, "WARN", ""))
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestConfigure_Fallback(t *testing.T) {
	log := logrus.New()
	err := Configure(log, "loud", "xml")
	assert.Error(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestInit_StandardLogger(t *testing.T) {
	prev := logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetLevel(prev)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	log := Init("error", "json")
	assert.Same(t, logrus.StandardLogger(), log)
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}
