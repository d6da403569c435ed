package logging

import (
	"io"
	stdlog "log"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New builds the logfmt logger used by the Lambda handler and the library
// packages. Output goes to w (stdout in production, which CloudWatch
// captures) with UTC timestamps and level filtering.
func New(w io.Writer) log.Logger {
	logger := log.With(
		log.NewLogfmtLogger(log.NewSyncWriter(w)),
		"ts", log.DefaultTimestampUTC,
	)
	if debug() {
		logger = level.NewFilter(logger, level.AllowAll())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.NewStdlibAdapter(logger))
	return logger
}

func debug() bool {
	if os.Getenv("AWS_SAM_LOCAL") == "true" {
		return true
	}
	if os.Getenv("DEBUG") != "" {
		return true
	}
	return false
}
