package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	logger := New(&buff)

	logger.Debugf("should be invisible")
	logger.Infof("hello %v", "world")
	logger.Errorf("great sadness")

	assert.Equal(t, "hello world\nerror: great sadness\n", buff.String())
}

func TestLoggerWithLevel(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	logger := New(&buff).WithLevel(Debug)

	logger.Debugf("now visible")
	assert.Equal(t, "debug: now visible\n", buff.String())
}

func TestLoggerWithName(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	logger := New(&buff).WithName("tmux")

	logger.Infof("attached")
	assert.Equal(t, "[tmux] attached\n", buff.String())
}

func TestLoggerNestedNames(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	logger := New(&buff).WithName("tm").WithName("list")

	logger.Errorf("boom")
	assert.Equal(t, "error: [tm.list] boom\n", buff.String())
}

func TestLoggerAttrs(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	logger := New(&buff)

	logger.Info("created", "session", "box_s_host-a", "windows", 2)
	assert.Equal(t, "created session=box_s_host-a windows=2\n", buff.String())
}

func TestLoggerQuotesAttrValues(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	logger := New(&buff)

	logger.Info("ran", "cmd", "echo host1 host2")
	assert.Equal(t, "ran cmd=\"echo host1 host2\"\n", buff.String())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Discard.Infof("into the void")
		Discard.WithName("x").WithLevel(Debug).Debugf("still nothing")
	})
}
