package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

func main() {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:          "salon",
		Short:        "Salon scheduling back office",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("port", "", "HTTP port (SERVER_PORT)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (LOG_LEVEL)")
	_ = v.BindPFlag("SERVER_PORT", rootCmd.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		serveCmd(v),
		migrateCmd(v),
		createUserCmd(v),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the config and builds the process logger.
func bootstrap(v *viper.Viper) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.New(logging.Config{
		ServiceName: "salon-scheduler",
		Environment: cfg.Env,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
