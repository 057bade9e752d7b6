package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

const migrationDir = "sql"

// Run применяет миграции журнала синтеза к базе данных
func Run(dsn string, logger *zap.Logger) error {
	logger.Info("начало применения миграций")

	db, err := open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Up(db, migrationDir); err != nil {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	logger.Info("миграции успешно применены")
	return nil
}

// Status выводит статус миграций
func Status(dsn string, logger *zap.Logger) error {
	files, err := Files()
	if err != nil {
		return err
	}
	logger.Info("проверка статуса миграций", zap.Strings("embedded", files))

	db, err := open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Status(db, migrationDir); err != nil {
		return fmt.Errorf("ошибка получения статуса миграций: %w", err)
	}

	logger.Info("статус миграций получен")
	return nil
}

// Files возвращает имена встроенных файлов миграций
func Files() ([]string, error) {
	entries, err := embedMigrations.ReadDir(migrationDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения миграций: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("TTS_JOURNAL_DSN не установлен")
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("ошибка установки диалекта: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных для миграций: %w", err)
	}
	return db, nil
}
