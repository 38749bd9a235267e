package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/planner/internal/logger"
)

func TestNew_respectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("warn", &buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNew_unknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("chatty", &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("shown")
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}
