package logger

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ********************************************************
// ********* LOGGING **************************************
// ********************************************************

var showDateTime bool
var defaultLogger *Logger
var logFile *os.File
var logFilePath = "/tmp/footstats.log"

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	INFORM
	HIGHLIGHT
	WARN
	ERROR
	FATAL
)

// Logger wraps a zerolog logger. Log lines go to stderr by default so that
// reports printed on stdout stay clean.
type Logger struct {
	zl    zerolog.Logger
	out   io.Writer
	level LogLevel
}

func init() {
	defaultLogger = NewLogger(INFO, os.Stderr)
	showDateTime = false
}

func consoleWriter(w io.Writer) io.Writer {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: false}
	if showDateTime {
		cw.TimeFormat = time.DateTime
	} else {
		cw.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	return cw
}

func NewLogger(level LogLevel, w io.Writer) *Logger {
	l := &Logger{out: w, level: level}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	l.zl = zerolog.New(consoleWriter(l.out)).
		Level(l.level.zerologLevel()).
		With().Timestamp().CallerWithSkipFrameCount(4).Logger()
}

func SetShowDateTime(value bool) {
	showDateTime = value
	defaultLogger.rebuild()
}

// SetOutput redirects the default logger, mostly for tests.
func SetOutput(w io.Writer) {
	defaultLogger.out = w
	defaultLogger.rebuild()
}

// SetLogFile changes the file used by SetLogOutput('f') and SetLogOutput('b').
func SetLogFile(path string) {
	if path != "" {
		logFilePath = path
	}
}

// SetLogOutput sets the output destination for logs
// 'c' for console, 'f' for file, 'b' for both
func SetLogOutput(outputType rune) error {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	switch outputType {
	case 'c':
		defaultLogger.out = os.Stderr
	case 'f', 'b':
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
		}
		logFile = f
		if outputType == 'f' {
			defaultLogger.out = f
		} else {
			defaultLogger.out = io.MultiWriter(os.Stderr, f)
		}
	default:
		return fmt.Errorf("invalid log output type: %c", outputType)
	}
	defaultLogger.rebuild()
	return nil
}

// SetLevel sets the minimum level by name (debug, info, warn, error).
func SetLevel(name string) error {
	lvl, err := ParseLevel(name)
	if err != nil {
		return err
	}
	defaultLogger.level = lvl
	defaultLogger.rebuild()
	return nil
}

func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "INFORM":
		return INFORM, nil
	case "HIGHLIGHT":
		return HIGHLIGHT, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case INFO, INFORM, HIGHLIGHT:
		return zerolog.InfoLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	case FATAL:
		return zerolog.FatalLevel
	}
	return zerolog.InfoLevel
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case INFORM:
		return "INFORM"
	case HIGHLIGHT:
		return "HIGHLIGHT"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l *Logger) log(level LogLevel, format string, v ...any) {
	if level < l.level {
		return
	}

	var ev *zerolog.Event
	switch level {
	case DEBUG:
		ev = l.zl.Debug()
	case WARN:
		ev = l.zl.Warn()
	case ERROR:
		ev = l.zl.Error()
	case FATAL:
		// WithLevel so that zerolog does not exit before the caller does
		ev = l.zl.WithLevel(zerolog.FatalLevel)
	default:
		ev = l.zl.Info()
	}
	if level == INFORM || level == HIGHLIGHT {
		ev = ev.Str("tag", strings.ToLower(level.String()))
	}

	primitives, objects := processArgs(v...)
	for i, obj := range objects {
		ev = ev.Interface(fmt.Sprintf("object%d", i), obj)
	}
	msg := format
	if len(primitives) > 0 {
		msg = format + " " + strings.Join(primitives, " ")
	}
	ev.Msg(msg)
}

// processArgs splits arguments into printable primitives and structured
// objects, which are attached as fields instead of being inlined
func processArgs(args ...any) ([]string, []any) {
	if len(args) == 0 {
		return nil, nil
	}

	var primitives []string
	var objects []any

	for _, arg := range args {
		if !isPrimitive(arg) {
			primitives = append(primitives, fmt.Sprintf("[%s]", reflect.TypeOf(arg)))
			objects = append(objects, arg)
			continue
		}
		switch v := arg.(type) {
		case float32:
			primitives = append(primitives, fmt.Sprintf("%.2f", v))
		case float64:
			primitives = append(primitives, fmt.Sprintf("%.2f", v))
		case string:
			primitives = append(primitives, v)
		case error:
			primitives = append(primitives, v.Error())
		case nil:
			primitives = append(primitives, "nil")
		default:
			primitives = append(primitives, fmt.Sprintf("%v", v))
		}
	}
	return primitives, objects
}

// isPrimitive checks if a value is a primitive type
func isPrimitive(v any) bool {
	if v == nil {
		return true
	}

	switch v.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, error, fmt.Stringer:
		return true
	default:
		return false
	}
}

// Convenience methods using the default logger
func Debug(format string, v ...any) {
	defaultLogger.log(DEBUG, format, v...)
}

func Info(format string, v ...any) {
	defaultLogger.log(INFO, format, v...)
}

func Inform(format string, v ...any) {
	defaultLogger.log(INFORM, format, v...)
}

func Highlight(format string, v ...any) {
	defaultLogger.log(HIGHLIGHT, format, v...)
}

func Warn(format string, v ...any) {
	defaultLogger.log(WARN, format, v...)
}

func Error(format string, v ...any) {
	defaultLogger.log(ERROR, format, v...)
}

func Fatal(format string, v ...any) {
	defaultLogger.log(FATAL, format, v...)
	os.Exit(1)
}
