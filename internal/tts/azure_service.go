package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"asterisk-tts/internal/config"

	"go.uber.org/zap"
)

// maxErrorBody ограничивает тело ошибки, которое попадает в лог
const maxErrorBody = 4096

// AzureService предоставляет функциональность Text-to-Speech через Microsoft Cognitive Services
type AzureService struct {
	logger *zap.Logger
	cfg    config.TTSConfig
	client *http.Client
}

// NewAzureService создает новый Microsoft TTS сервис
func NewAzureService(logger *zap.Logger, cfg config.TTSConfig) *AzureService {
	return &AzureService{
		logger: logger,
		cfg:    cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SynthesizeText преобразует текст в аудио через Microsoft TTS.
// Выполняется ровно одна попытка, без повторов.
func (s *AzureService) SynthesizeText(ctx context.Context, text string) ([]byte, error) {
	req := NewRequest(text, s.cfg)

	s.logger.Debug("🎵 генерируем аудио через Microsoft TTS",
		zap.String("voice", req.Voice),
		zap.String("format", req.Format),
		zap.Int("text_length", len(text)))

	start := time.Now()
	audioData, err := s.generateAudio(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("🎵 аудио успешно сгенерировано",
		zap.Int("audio_size", len(audioData)),
		zap.Duration("elapsed", time.Since(start)))

	return audioData, nil
}

// generateAudio отправляет SSML в Microsoft TTS и получает аудио
func (s *AzureService) generateAudio(ctx context.Context, r Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewBufferString(r.SSML()))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/ssml+xml")
	httpReq.Header.Set("X-Microsoft-OutputFormat", r.Format)
	httpReq.Header.Set("Ocp-Apim-Subscription-Key", s.cfg.APIKey)
	httpReq.Header.Set("User-Agent", s.cfg.UserAgent)

	s.logger.Debug("🎵 отправляем запрос к Microsoft TTS", zap.String("url", s.cfg.APIURL))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Op: "выполнения запроса", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if len(body) == 0 {
			body = []byte(resp.Status)
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: bytes.TrimSpace(body)}
	}

	// Читаем ответ целиком до записи в файл
	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "чтения аудио данных", Err: err}
	}

	return audioData, nil
}
