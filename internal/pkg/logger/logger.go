package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZeroLogger é a implementação concreta da interface Logger sobre o zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

// NewLogger cria um Logger JSON em stdout com o nível informado ("debug", "info", "warn", "error").
func NewLogger(level string) Logger {
	return newZeroLogger(os.Stdout, level, false)
}

// NewDevelopmentLogger cria um Logger legível para terminal (ENV=development).
func NewDevelopmentLogger(level string) Logger {
	return newZeroLogger(os.Stdout, level, true)
}

// NewWithWriter permite direcionar a saída (usado em testes).
func NewWithWriter(w io.Writer, level string) Logger {
	return newZeroLogger(w, level, false)
}

// NewNop devolve um Logger que descarta tudo.
func NewNop() Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func newZeroLogger(w io.Writer, level string, console bool) *ZeroLogger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zl := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", "servilink").
		Logger()
	return &ZeroLogger{zl: zl}
}

// parseLevel converte o nível textual; valores desconhecidos caem em info.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error) {
	l.zl.Error().Err(err).Msg(msg)
}

// Fatal registra o erro e encerra o processo.
func (l *ZeroLogger) Fatal(msg string, err error) {
	l.zl.Fatal().Err(err).Msg(msg)
}
