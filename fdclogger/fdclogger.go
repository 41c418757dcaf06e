package fdclogger

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const LOG_FILE = "logs/fdc.log"

type FDCLogger struct {
	log.Logger
}

func NewLoggerByWriter(w io.Writer) *FDCLogger {
	return &FDCLogger{
		Logger: *log.New(w, "fdc: ", log.Ldate|log.Ltime),
	}
}

func NewLoggerByLogName(logFile string) *FDCLogger {
	os.MkdirAll(filepath.Dir(logFile), 0755)
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Fall back to stdout so that logging never blocks a run.
		return NewLoggerByWriter(os.Stdout)
	}
	return NewLoggerByWriter(file)
}

var LoggerInstance *FDCLogger = NewLoggerByLogName(LOG_FILE)
