package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the global zerolog logger the way the teacher's
// own code reaches for it (github.com/rs/zerolog/log's package-level
// logger), writing to a rotated file when --log-file is set and to
// standard error otherwise.
func InitLogger(cli *CLI) {
	level := zerolog.InfoLevel
	if cli.Debug {
		level = zerolog.DebugLevel
	}

	var w zerolog.ConsoleWriter
	if cli.LogFile != "" {
		w = zerolog.ConsoleWriter{Out: &lumberjack.Logger{
			Filename:   cli.LogFile,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		}, NoColor: true}
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
	}

	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}
