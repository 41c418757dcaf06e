package testcommon

import (
	"log"
	"os"

	"github.com/wayming/fdc/fdclogger"
)

// SetupTest routes the package level logger to stderr for the duration of a
// test so that test output is not scattered over log files.
func SetupTest(testName string) {
	fdclogger.LoggerInstance = fdclogger.NewLoggerByWriter(os.Stderr)
}

func TeardownTest() {
}

// TestLogger returns a logger prefixed with the test name.
func TestLogger(testName string) *log.Logger {
	return log.New(os.Stderr, testName+": ", log.Ldate|log.Ltime)
}
