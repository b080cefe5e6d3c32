package cmd

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates the logger configured by the log section.
func newLogger() hclog.Logger {
	var out io.Writer = os.Stderr

	if path := viper.GetString("log.file"); path != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    viper.GetInt("log.max_size_mb"),
			MaxBackups: viper.GetInt("log.max_backups"),
			MaxAge:     viper.GetInt("log.max_age_days"),
		})
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "gatepipe",
		Output: out,
		Level:  hclog.LevelFromString(viper.GetString("log.level")),
	})
}
