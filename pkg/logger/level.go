package logger

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Level is a syslog severity. The eight levels are wider than the four methods
// on Logger; Log maps them down and records the original severity as a field.
type Level uint8

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
)

var levelNames = [...]string{
	Debug:     "debug",
	Info:      "info",
	Notice:    "notice",
	Warning:   "warning",
	Error:     "error",
	Critical:  "critical",
	Alert:     "alert",
	Emergency: "emergency",
}

// InvalidLevel is returned by ParseLevel for unrecognized names.
var InvalidLevel = errors.New("[logger] - invalid level")

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel parses a case-insensitive level name. "warn" is accepted as an
// alias for Warning.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warn" {
		return Warning, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return Debug, errors.Wrapf(InvalidLevel, "%q", s)
}

// ZapLevel returns the zap level a message at l is written at.
func (l Level) ZapLevel() zapcore.Level {
	switch {
	case l <= Debug:
		return zapcore.DebugLevel
	case l <= Notice:
		return zapcore.InfoLevel
	case l == Warning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// lossy reports whether l shares a zap level with a less severe Level.
func (l Level) lossy() bool { return l == Notice || l > Error }

const severityKey = "severity"

// Log writes msg to lg at lvl.
func Log(lg Logger, lvl Level, msg string, keysAndValues ...interface{}) {
	if lvl.lossy() {
		keysAndValues = append(keysAndValues, severityKey, lvl.String())
	}
	switch lvl.ZapLevel() {
	case zapcore.DebugLevel:
		lg.Debugw(msg, keysAndValues...)
	case zapcore.InfoLevel:
		lg.Infow(msg, keysAndValues...)
	case zapcore.WarnLevel:
		lg.Warnw(msg, keysAndValues...)
	default:
		lg.Errorw(msg, keysAndValues...)
	}
}
