package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

type LogMode string

const (
	LogModePretty LogMode = "pretty"
	LogModeDebug  LogMode = "debug"
	LogModeInfo   LogMode = "info"
	LogModeProd   LogMode = "prod"
	LogModeTest   LogMode = "test"
)

// log stays a no-op until InitWithMode runs, so library consumers and tests
// never have to initialize it.
var log = zerolog.Nop()

func Init() {
	InitWithMode(LogModePretty)
}

// InitWithMode configures the global logger. Pretty and debug modes write a
// human console format; info and prod write JSON; test discards everything.
func InitWithMode(mode LogMode) {
	zerolog.TimeFieldFormat = time.RFC3339

	switch mode {
	case LogModeTest:
		log = zerolog.New(os.Stdout).Level(zerolog.Disabled)
	case LogModeProd:
		log = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	case LogModeInfo:
		log = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	case LogModeDebug:
		log = consoleLogger(zerolog.DebugLevel)
	default:
		log = consoleLogger(zerolog.InfoLevel)
	}
	zerolog.DefaultContextLogger = &log
}

func consoleLogger(level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Get returns the logger instance.
func Get() zerolog.Logger {
	return log
}

// WithComponent tags a child logger with the subsystem emitting it.
func WithComponent(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
