package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoColor  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnColor  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugColor = lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}
)

func levelStyle(label string, color lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().SetString(label).Bold(true).Padding(0, 1).Foreground(color)
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = levelStyle("ERROR", errorColor)
	styles.Levels[log.WarnLevel] = levelStyle("WARN", warnColor)
	styles.Levels[log.InfoLevel] = levelStyle("INFO", infoColor)
	styles.Levels[log.DebugLevel] = levelStyle("DEBUG", debugColor)

	keys := map[string]lipgloss.AdaptiveColor{
		"error":  errorColor,
		"warn":   warnColor,
		"info":   infoColor,
		"prefix": debugColor,
		"caller": debugColor,
		"time":   debugColor,
	}
	for k, color := range keys {
		styles.Keys[k] = lipgloss.NewStyle().Foreground(color)
		styles.Values[k] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// logOutput writes to stdout and, when cfg.File is set, to a rotating file.
func logOutput(cfg *config.Log) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	})
}

func setupLogger(cfg *config.Log) *slog.Logger {
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(logOutput(cfg), log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(logStyles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
