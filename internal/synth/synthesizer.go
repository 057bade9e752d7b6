package synth

import (
	"context"
	"errors"
	"os"
	"time"

	"asterisk-tts/internal/audio"
	"asterisk-tts/internal/config"
	"asterisk-tts/internal/tts"
	"asterisk-tts/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AudioStore сохраняет полученное аудио
type AudioStore interface {
	Save(path string, data []byte, mode os.FileMode) error
}

// Sink получает запись о каждом вызове синтеза (журнал, метрики).
// Ошибки sink'ов только логируются и не влияют на результат.
type Sink interface {
	Record(ctx context.Context, rec *models.SynthesisRecord) error
}

// Synthesizer выполняет один синтез: запрос к сервису и запись файла
type Synthesizer struct {
	logger  *zap.Logger
	cfg     config.TTSConfig
	service tts.TTSService
	store   AudioStore
	sinks   []Sink
}

// New создает новый синтезатор
func New(logger *zap.Logger, cfg config.TTSConfig, service tts.TTSService, store AudioStore, sinks ...Sink) *Synthesizer {
	return &Synthesizer{
		logger:  logger,
		cfg:     cfg,
		service: service,
		store:   store,
		sinks:   sinks,
	}
}

// Synthesize синтезирует text и записывает аудио в outputPath.
// Файл записывается тогда и только тогда, когда сервис ответил 200.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outputPath string) Result {
	requestID := uuid.New()
	logger := s.logger.With(zap.String("request_id", requestID.String()))

	result := s.synthesize(ctx, logger, text, outputPath)

	if result.OK() {
		logger.Info("синтез завершен",
			zap.String("output", outputPath),
			zap.Int("audio_size", result.AudioBytes),
			zap.Duration("duration", result.Duration))
	} else {
		logger.Error("синтез не выполнен",
			zap.Stringer("reason", result.Reason),
			zap.Int("http_status", result.StatusCode),
			zap.Error(result.Err))
	}

	// Без ключа синтез не начинался: ни журнала, ни метрик, никаких сетевых вызовов
	if result.Reason == ReasonMissingCredential {
		return result
	}

	s.record(ctx, logger, &models.SynthesisRecord{
		RequestID:   requestID,
		Text:        text,
		OutputPath:  outputPath,
		Voice:       s.cfg.Voice,
		AudioFormat: s.cfg.AudioFormat,
		Status:      statusOf(result),
		Reason:      result.Reason.String(),
		HTTPStatus:  result.StatusCode,
		AudioBytes:  result.AudioBytes,
		DurationMS:  result.Duration.Milliseconds(),
		CreatedAt:   time.Now(),
	})

	return result
}

func (s *Synthesizer) synthesize(ctx context.Context, logger *zap.Logger, text, outputPath string) Result {
	if err := s.cfg.Validate(); err != nil {
		return Failure(ReasonMissingCredential, err)
	}

	start := time.Now()
	data, err := s.service.SynthesizeText(ctx, text)
	elapsed := time.Since(start)
	if err != nil {
		result := classify(err)
		result.Duration = elapsed
		return result
	}

	s.probe(logger, data)

	if err := s.store.Save(outputPath, data, s.cfg.FileMode.Perm()); err != nil {
		result := Failure(ReasonWriteError, err)
		result.StatusCode = 200
		result.Duration = elapsed
		return result
	}

	return Success(len(data), elapsed)
}

// classify сводит ошибку сервиса к причине неудачи
func classify(err error) Result {
	var statusErr *tts.StatusError
	if errors.As(err, &statusErr) {
		result := Failure(ReasonHTTPError, err)
		result.StatusCode = statusErr.StatusCode
		return result
	}
	return Failure(ReasonNetworkError, err)
}

// probe сверяет заголовок WAV с запрошенным форматом. Только для диагностики.
func (s *Synthesizer) probe(logger *zap.Logger, data []byte) {
	if s.cfg.AudioFormat != config.DefaultAudioFormat {
		return
	}
	format, err := audio.Probe(data)
	if err != nil {
		logger.Warn("ответ сервиса не похож на WAV", zap.Error(err))
		return
	}
	if format != audio.Telephony {
		logger.Warn("формат аудио отличается от запрошенного",
			zap.Stringer("expected", audio.Telephony),
			zap.Stringer("actual", format))
	}
}

func (s *Synthesizer) record(ctx context.Context, logger *zap.Logger, rec *models.SynthesisRecord) {
	for _, sink := range s.sinks {
		if err := sink.Record(ctx, rec); err != nil {
			logger.Warn("ошибка записи результата синтеза", zap.Error(err))
		}
	}
}

func statusOf(r Result) string {
	if r.OK() {
		return models.StatusSuccess
	}
	return models.StatusFailure
}
