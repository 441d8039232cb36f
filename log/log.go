package log

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

const timeFormat = "2006-01-02T15:04:05.000"

func newLogger(w io.Writer, prefix string) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
	})
}

var (
	IDX   = newLogger(os.Stderr, "INDEX")
	HTTP  = newLogger(os.Stderr, "HTTP")
	FS    = newLogger(os.Stderr, "FILES")
	CHART = newLogger(os.Stderr, "CHART")
)

// SetOutput points every logger at w.
func SetOutput(w io.Writer) {
	for _, l := range []*charmlog.Logger{IDX, HTTP, FS, CHART} {
		l.SetOutput(w)
	}
}

// SetLevel hides everything below level, e.g. charmlog.WarnLevel.
func SetLevel(level charmlog.Level) {
	for _, l := range []*charmlog.Logger{IDX, HTTP, FS, CHART} {
		l.SetLevel(level)
	}
}
