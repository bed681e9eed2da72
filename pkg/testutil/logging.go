// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func init() {
	for _, arg := range os.Args {
		if arg == "-test.v=true" {
			return
		}
	}

	logrus.StandardLogger().SetOutput(io.Discard)
}

// CaptureLogs records entries written to the standard logger at any level
// for the rest of the test.
func CaptureLogs(t testing.TB) *test.Hook {
	logger := logrus.StandardLogger()
	level := logger.GetLevel()

	hook := test.NewLocal(logger)
	logger.SetLevel(logrus.TraceLevel)

	t.Cleanup(func() {
		logger.SetLevel(level)
		logger.ReplaceHooks(make(logrus.LevelHooks))
	})
	return hook
}
