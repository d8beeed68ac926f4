package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// Config selects the output format and minimum level.
// Env "development" renders human readable lines, anything else JSON.
type Config struct {
	Env   string
	Level string
}

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Configure replaces the process logger
func Configure(cfg Config) {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}
	SetOutput(w)
	SetLevel(ParseLevel(cfg.Level))
}

// SetOutput redirects log output, keeping the current level
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).Level(logger.GetLevel()).With().Timestamp().Logger()
	log.Logger = logger
}

func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(toZerolog(level))
	log.Logger = logger
}

// ParseLevel maps a textual level to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the underlying zerolog logger for structured fields
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// With returns a child logger carrying the given fields
func With(fields map[string]any) zerolog.Logger {
	return Logger().With().Fields(fields).Logger()
}

func Debug(msg string) { Logger().Debug().Msg(msg) }
func Info(msg string)  { Logger().Info().Msg(msg) }
func Warn(msg string)  { Logger().Warn().Msg(msg) }
func Error(msg string) { Logger().Error().Msg(msg) }
func Fatal(msg string) { Logger().Fatal().Msg(msg) }

func Debugf(format string, args ...any) { Logger().Debug().Msg(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Logger().Info().Msg(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Logger().Warn().Msg(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Logger().Error().Msg(fmt.Sprintf(format, args...)) }
func Fatalf(format string, args ...any) { Logger().Fatal().Msg(fmt.Sprintf(format, args...)) }
