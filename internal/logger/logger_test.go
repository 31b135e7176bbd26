package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_InvalidLevel(t *testing.T) {
	err := Init("loud", false)
	assert.Error(t, err)
}

func TestSet_RoutesMessages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Infof("房间 %s 已创建", "123456")
	Warnf("warn %d", 1)
	Errorf("error")
	Debugf("debug")
	LogPanic("boom")

	require.Equal(t, 5, logs.Len())
	assert.Equal(t, "房间 123456 已创建", logs.All()[0].Message)
	assert.Equal(t, "panic recovered", logs.All()[4].Message)
}

func TestInit_Development(t *testing.T) {
	require.NoError(t, Init("debug", true))
	t.Cleanup(func() { Set(zap.NewNop()) })

	assert.NotPanics(t, func() {
		Infof("hello")
		Sync()
	})
}
