// Package logging provides structured logging for the mstransfer server
// and CLI.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/chrisagrams/mstransfer/internal/events"
)

// Logger wraps zerolog with the console-writer formatting used throughout
// this repo.
type Logger struct {
	zlog   zerolog.Logger
	output io.Writer
}

// NewLogger creates a logger writing to the given output.
func NewLogger(w io.Writer) *Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	zlog := zerolog.New(output).With().Timestamp().Logger()
	return &Logger{zlog: zlog, output: output}
}

// NewDefaultLogger creates a logger writing to stdout (stderr is reserved
// for progress bars during batch uploads).
func NewDefaultLogger() *Logger {
	return NewLogger(os.Stdout)
}

func (l *Logger) Info() *zerolog.Event  { return l.zlog.Info() }
func (l *Logger) Error() *zerolog.Event { return l.zlog.Error() }
func (l *Logger) Debug() *zerolog.Event { return l.zlog.Debug() }
func (l *Logger) Warn() *zerolog.Event  { return l.zlog.Warn() }
func (l *Logger) Fatal() *zerolog.Event { return l.zlog.Fatal() }

// With creates a child-logger context.
func (l *Logger) With() zerolog.Context {
	return l.zlog.With()
}

// SetOutput redirects the logger's output, rebuilding the console writer
// around the new destination (used to route logs above mpb's progress
// bars during a batch upload).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
	l.zlog = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()
}

// Output returns the current output writer.
func (l *Logger) Output() io.Writer {
	return l.output
}

// SetGlobalLevel sets the process-wide minimum log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// SubscribeEventBus mirrors transfer state-change and log events from an
// EventBus onto this logger. Used by the server to turn registry state
// transitions into structured log lines without the registry itself
// depending on the logging package.
func (l *Logger) SubscribeEventBus(bus *events.EventBus) {
	stateCh := bus.Subscribe(events.EventTransferStateChange)
	logCh := bus.Subscribe(events.EventLog)

	go func() {
		for {
			select {
			case ev, ok := <-stateCh:
				if !ok {
					return
				}
				sc, ok := ev.(*events.TransferStateChangeEvent)
				if !ok {
					continue
				}
				e := l.Info()
				if sc.NewState == "error" {
					e = l.Warn()
				}
				e.Str("transfer_id", sc.TransferID).
					Str("from", sc.OldState).
					Str("to", sc.NewState)
				if sc.Error != "" {
					e.Str("error", sc.Error)
				}
				e.Msg("transfer state change")
			case ev, ok := <-logCh:
				if !ok {
					return
				}
				le, ok := ev.(*events.LogEvent)
				if !ok {
					continue
				}
				e := l.zlog.WithLevel(zerologLevel(le.Level))
				if le.Error != nil {
					e = e.Err(le.Error)
				}
				e.Msg(le.Message)
			}
		}
	}()
}

func zerologLevel(l events.LogLevel) zerolog.Level {
	switch l {
	case events.DebugLevel:
		return zerolog.DebugLevel
	case events.WarnLevel:
		return zerolog.WarnLevel
	case events.ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
