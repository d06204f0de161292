package main

import (
	"os"

	"github.com/basketwise/recommender/internal/app"
	config "github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	logCfg := config.LoadLogCfg()
	log := logger.New(logCfg.Format, logCfg.Level)

	if err := newRootCmd(log).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(log logger.Logger) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the recommendations HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(log)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg, err := config.LoadPGDBCfg(log)
			if err != nil {
				return err
			}

			return app.Migrate(dbCfg, log)
		},
	}

	rootCmd := &cobra.Command{
		Use:           "recommender",
		Short:         "Cart substitute recommendations: cheaper same-type and healthier alternatives",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	rootCmd.AddCommand(serveCmd, migrateCmd)

	return rootCmd
}

func serve(log logger.Logger) error {
	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		return err
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		return err
	}

	return application.Run()
}
