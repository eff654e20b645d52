package logger

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	assert := assert.New(t)

	Init(false, true)
	assert.Equal(log.WarnLevel, log.GetLevel())

	Init(true, true)
	assert.Equal(log.DebugLevel, log.GetLevel())
}

func TestZap(t *testing.T) {
	assert := assert.New(t)

	assert.False(Zap(false).Core().Enabled(zap.ErrorLevel))
	assert.True(Zap(true).Core().Enabled(zap.DebugLevel))
}
