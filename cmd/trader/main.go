// Command trader builds and submits multi-leg option spread orders.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"spread-trader/internal/cli"
	"spread-trader/internal/config"
	"spread-trader/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv(cli.ConfigDirEnv))
	if err != nil {
		l := logging.NewLogger()
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	// Console logs would interleave with command output; keep them for debug runs.
	logCfg.Console = logging.ParseLevel(cfg.Logging.Level) <= zerolog.DebugLevel
	logCfg.FilePath = cfg.Logging.File
	logCfg.File = cfg.Logging.File != ""
	logger := logging.NewLoggerWithConfig(logCfg)

	if err := cli.NewRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}
