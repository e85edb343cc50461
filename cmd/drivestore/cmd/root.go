package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "drivestore",
	Short: "Path-addressed documents in Google Drive",
	Long: "CLI for reading and writing documents in Google Drive by slash-delimited paths.\n" +
		"Paths may carry a scheme: app:// (application data folder, default) or root:// (drive root).",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.config/drivestore/config.yaml)")
	flags.String("backend", "drive", "backend: drive or memory")
	flags.String("scheme", "app", "root for paths without a scheme: app or root")
	flags.String("codec", "json", "document codec: json, cbor or yaml")
	flags.Bool("compress", false, "compress documents with zstd")
	flags.Bool("verbose", false, "log every path resolution step")
	flags.Bool("no-cache", false, "disable the folder cache")
	flags.Float64("rate", 0, "maximum backend requests per second (0 = unlimited)")
	flags.Int("burst", 1, "request burst allowed by --rate")
	flags.Bool("trash", false, "move deleted resources to the trash instead of deleting them")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		"backend":   "backend",
		"scheme":    "scheme",
		"codec":     "codec",
		"compress":  "compress",
		"verbose":   "verbose",
		"no_cache":  "no-cache",
		"rate":      "rate",
		"burst":     "burst",
		"trash":     "trash",
		"log_level": "log-level",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DRIVESTORE")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "drivestore")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "drivestore")
	}
	return ".drivestore"
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	ll := &slog.LevelVar{}
	switch level := viper.GetString("log_level"); level {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info", "":
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %q", level)
	}
	stderr := os.Stderr
	logger := slog.New(tint.NewHandler(colorable.NewColorable(stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(stderr.Fd()),
	}))
	slog.SetDefault(logger)
	return nil
}
