package journal

import (
	"context"
	"fmt"
	"time"

	"asterisk-tts/internal/config"
	"asterisk-tts/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Journal хранит историю вызовов синтеза
type Journal interface {
	Record(ctx context.Context, rec *models.SynthesisRecord) error
	Close() error
}

// Open подключается к журналу. Пустой DSN означает, что журнал отключен.
func Open(ctx context.Context, cfg config.JournalConfig, logger *zap.Logger) (Journal, error) {
	if !cfg.Enabled() {
		return Nop{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DSN: %w", err)
	}

	// Процесс живет один вызов, пул из одного соединения
	poolConfig.MaxConns = 1
	poolConfig.MinConns = 0

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	logger.Debug("журнал синтеза подключен")

	return NewPostgresJournal(db, cfg.Timeout, logger), nil
}

// Nop - журнал, который ничего не хранит
type Nop struct{}

func (Nop) Record(context.Context, *models.SynthesisRecord) error { return nil }

func (Nop) Close() error { return nil }

// PostgresJournal реализует Journal для PostgreSQL
type PostgresJournal struct {
	db      *pgxpool.Pool
	timeout time.Duration
	logger  *zap.Logger
}

// NewPostgresJournal создает журнал поверх пула соединений
func NewPostgresJournal(db *pgxpool.Pool, timeout time.Duration, logger *zap.Logger) *PostgresJournal {
	return &PostgresJournal{
		db:      db,
		timeout: timeout,
		logger:  logger,
	}
}

// Record сохраняет запись о вызове синтеза
func (j *PostgresJournal) Record(ctx context.Context, rec *models.SynthesisRecord) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	query := `
		INSERT INTO synthesis_journal (
			request_id, text, output_path, voice, audio_format,
			status, reason, http_status, audio_bytes, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := j.db.QueryRow(ctx, query, recordArgs(rec)...).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал синтеза: %w", err)
	}

	j.logger.Debug("вызов синтеза записан в журнал",
		zap.Int64("id", rec.ID),
		zap.String("status", rec.Status))

	return nil
}

// Close закрывает подключение к базе данных
func (j *PostgresJournal) Close() error {
	j.db.Close()
	return nil
}

func recordArgs(rec *models.SynthesisRecord) []any {
	return []any{
		rec.RequestID,
		rec.Text,
		rec.OutputPath,
		rec.Voice,
		rec.AudioFormat,
		rec.Status,
		rec.Reason,
		rec.HTTPStatus,
		rec.AudioBytes,
		rec.DurationMS,
		rec.CreatedAt,
	}
}
