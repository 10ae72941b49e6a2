// Package logtest provides a logger that can write to a testing.T.
package logtest

import (
	"testing"

	"github.com/abhinav/tm/internal/iotest"
	"github.com/abhinav/tm/internal/log"
)

// NewLogger builds a logger at debug level that writes to a testing.T.
func NewLogger(t testing.TB) *log.Logger {
	return log.New(iotest.Writer(t)).WithLevel(log.Debug)
}
