package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alkanes-dev/alkanes-abi/logging/colors"
)

// GlobalLogger describes a Logger that is disabled by default and is configured when the CLI starts.
// Each package should create its own sub-logger so that log output is "grep-able" by module.
var GlobalLogger *Logger

// Logger describes a custom logging object that can log events to any arbitrary channel, in
// structured or unstructured format, and can handle specialized colorized output to console.
type Logger struct {
	// level describes the log level.
	level zerolog.Level

	// multiLogger describes a logger that outputs to the structured and plain unstructured writers.
	multiLogger zerolog.Logger

	// consoleLogger describes a logger that outputs colorized unstructured logs to console writers.
	consoleLogger zerolog.Logger

	// structuredWriters describes writers receiving structured JSON output.
	structuredWriters []io.Writer

	// unstructuredWriters describes writers receiving unstructured output with no ANSI coloring.
	unstructuredWriters []io.Writer

	// unstructuredColorWriters describes writers receiving colorized unstructured output.
	unstructuredColorWriters []io.Writer
}

// LogFormat describes what format to log in.
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format.
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format.
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data.
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level and no writers. Writers can
// be added with AddWriter.
func NewLogger(level zerolog.Level) *Logger {
	logger := &Logger{level: level}
	logger.rebuild()
	return logger
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The
// expected use of this function is for each package to have its own unique logger.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	return &Logger{
		level:                    l.level,
		multiLogger:              l.multiLogger.With().Str(key, value).Logger(),
		consoleLogger:            l.consoleLogger.With().Str(key, value).Logger(),
		structuredWriters:        l.structuredWriters,
		unstructuredWriters:      l.unstructuredWriters,
		unstructuredColorWriters: l.unstructuredColorWriters,
	}
}

// AddWriter will add a writer to the list of channels where log output will be sent. The format
// determines whether the writer receives structured JSON; colored selects ANSI coloring for
// unstructured output.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)

	// Check to see if the writer is already registered
	for _, w := range *writers {
		if writer == w {
			return
		}
	}

	*writers = append(*writers, writer)
	l.rebuild()
}

// RemoveWriter will remove a writer from the list of writers that the logger manages. If the writer
// does not exist, this function is a no-op.
func (l *Logger) RemoveWriter(writer io.Writer, format LogFormat, colored bool) {
	writers := l.writersFor(format, colored)
	for i, w := range *writers {
		if writer == w {
			*writers = append((*writers)[:i], (*writers)[i+1:]...)
			l.rebuild()
			return
		}
	}
}

// writersFor returns the writer list associated with the provided format and coloring choice.
func (l *Logger) writersFor(format LogFormat, colored bool) *[]io.Writer {
	if format == STRUCTURED {
		return &l.structuredWriters
	}
	if colored {
		return &l.unstructuredColorWriters
	}
	return &l.unstructuredWriters
}

// rebuild recreates the underlying zerolog loggers from the current writer lists and level.
func (l *Logger) rebuild() {
	// The two base loggers are effectively disabled until writers are registered. We create
	// instances of them so that we do not get nil dereferences down the line.
	l.multiLogger = zerolog.New(io.Discard).Level(zerolog.Disabled)
	l.consoleLogger = zerolog.New(io.Discard).Level(zerolog.Disabled)

	if len(l.structuredWriters)+len(l.unstructuredWriters) > 0 {
		writers := make([]io.Writer, 0, len(l.structuredWriters)+len(l.unstructuredWriters))
		writers = append(writers, l.structuredWriters...)
		// Unstructured output is the console writer format with no ANSI coloring.
		for _, writer := range l.unstructuredWriters {
			writers = append(writers, zerolog.ConsoleWriter{Out: writer, NoColor: true})
		}
		l.multiLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(l.level).With().Timestamp().Logger()
	}

	if len(l.unstructuredColorWriters) > 0 {
		writers := make([]io.Writer, 0, len(l.unstructuredColorWriters))
		for _, writer := range l.unstructuredColorWriters {
			writers = append(writers, setupDefaultFormatting(zerolog.ConsoleWriter{Out: writer}, l.level))
		}
		l.consoleLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(l.level)
	}
}

// Level will get the log level of the Logger.
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.multiLogger = l.multiLogger.Level(level)
	l.consoleLogger = l.consoleLogger.Level(level)
}

// Trace is a wrapper function that will log a trace event.
func (l *Logger) Trace(args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)
	l.send(l.consoleLogger.Trace(), l.multiLogger.Trace(), consoleMsg, multiMsg, err, info)
}

// Debug is a wrapper function that will log a debug event.
func (l *Logger) Debug(args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)
	l.send(l.consoleLogger.Debug(), l.multiLogger.Debug(), consoleMsg, multiMsg, err, info)
}

// Info is a wrapper function that will log an info event.
func (l *Logger) Info(args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)
	l.send(l.consoleLogger.Info(), l.multiLogger.Info(), consoleMsg, multiMsg, err, info)
}

// Warn is a wrapper function that will log a warning event.
func (l *Logger) Warn(args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)
	l.send(l.consoleLogger.Warn(), l.multiLogger.Warn(), consoleMsg, multiMsg, err, info)
}

// Error is a wrapper function that will log an error event.
func (l *Logger) Error(args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)
	l.send(l.consoleLogger.Error(), l.multiLogger.Error(), consoleMsg, multiMsg, err, info)
}

// Panic is a wrapper function that will log a panic event.
func (l *Logger) Panic(args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)
	l.send(l.consoleLogger.Panic(), l.multiLogger.Panic(), consoleMsg, multiMsg, err, info)
}

// send chains the error, structured log info, and messages onto the provided events and sends them
// off to their respective channels. Stack traces are attached when running at debug level or below.
func (l *Logger) send(consoleLog *zerolog.Event, multiLog *zerolog.Event, consoleMsg string, multiMsg string, err error, info StructuredLogInfo) {
	// Note that even if err is nil, chaining it will not panic.
	consoleLog.Err(err)
	multiLog.Err(err)
	if err != nil && l.level <= zerolog.DebugLevel {
		consoleLog.Stack()
		multiLog.Stack()
	}

	if info != nil {
		consoleLog.Any("info", info)
		multiLog.Any("info", info)
	}

	// Deferring the multi logger message ensures all channels receive the log even for panics.
	defer multiLog.Msg(multiMsg)
	consoleLog.Msg(consoleMsg)
}

// buildMsgs takes in a variadic list of arguments of any type and returns two strings and,
// optionally, an error and a StructuredLogInfo object. The first string is a colorized string for
// console logging while the second is a non-colorized one for file/structured logging. Color
// functions in the argument list switch the color context for subsequent arguments.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	// Guard clause
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	consoleOutput := make([]string, 0, len(args))
	fileOutput := make([]string, 0, len(args))
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			colorCtx = t
		case StructuredLogInfo:
			// Note that only one structured log info can be provided for each log message
			info = t
		case error:
			// Note that only one error can be provided for each log message
			err = t
		default:
			consoleOutput = append(consoleOutput, colorCtx(t))
			fileOutput = append(fileOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(consoleOutput, ""), strings.Join(fileOutput, ""), err, info
}

// setupDefaultFormatting will update the console writer's formatting to the extractor standard.
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Get rid of the timestamp for console output
	writer.FormatTimestamp = func(i interface{}) string {
		return ""
	}

	// Define a custom format for each level
	writer.FormatLevel = func(i any) string {
		parsedLevel, err := zerolog.ParseLevel(i.(string))
		if err != nil {
			return i.(string)
		}

		switch parsedLevel {
		case zerolog.TraceLevel:
			return colors.CyanBold(zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return colors.BlueBold(zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return colors.GreenBold(colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return colors.YellowBold(zerolog.LevelWarnValue)
		case zerolog.ErrorLevel:
			return colors.RedBold(zerolog.LevelErrorValue)
		case zerolog.FatalLevel:
			return colors.RedBold(zerolog.LevelFatalValue)
		case zerolog.PanicLevel:
			return colors.RedBold(zerolog.LevelPanicValue)
		default:
			return i.(string)
		}
	}

	// Above debug level, exclude the `module` component from console output to keep it terse.
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module"}
	}

	return writer
}
