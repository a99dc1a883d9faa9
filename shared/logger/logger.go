package logger

import (
	"io"
	"os"
	"parkflow/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const FormatJSON = "json"

// InitLogger points the global zerolog logger at stdout. Console output is
// meant for local runs; set SERVER_LOG_FORMAT=json in deployed environments.
func InitLogger(cfg *config.Config) {
	Setup(cfg, os.Stdout)
}

func Setup(cfg *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Server.LogFormat != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.App.Name).
		Str("env", cfg.Server.Env).
		Logger()

	SetLogLevel(cfg)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel falls back to info when the configured level is unknown.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Debug().Str("loglevel", level.String()).Msg("log level set")
}
