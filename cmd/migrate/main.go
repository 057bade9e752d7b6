package main

import (
	"fmt"
	"log"
	"os"

	"asterisk-tts/internal/config"
	"asterisk-tts/internal/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	// Инициализация логгера
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Ошибка инициализации логгера:", err)
	}
	defer logger.Sync()

	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("ошибка выполнения миграций", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCommand(logger *zap.Logger) *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Миграции журнала синтеза (TTS_JOURNAL_DSN)",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if dsn != "" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
			}
			dsn = cfg.Journal.DSN
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "DSN базы данных (по умолчанию TTS_JOURNAL_DSN)")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Применить миграции",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return migrations.Run(dsn, logger)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Показать статус миграций",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return migrations.Status(dsn, logger)
			},
		},
	)

	return root
}
