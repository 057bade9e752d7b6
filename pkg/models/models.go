package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы вызова синтеза
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// SynthesisRecord описывает один вызов синтеза речи из диалплана
type SynthesisRecord struct {
	ID          int64     `json:"id" db:"id"`
	RequestID   uuid.UUID `json:"request_id" db:"request_id"`
	Text        string    `json:"text" db:"text"`
	OutputPath  string    `json:"output_path" db:"output_path"`
	Voice       string    `json:"voice" db:"voice"`
	AudioFormat string    `json:"audio_format" db:"audio_format"`
	Status      string    `json:"status" db:"status"`           // success, failure
	Reason      string    `json:"reason" db:"reason"`           // пусто при успехе
	HTTPStatus  int       `json:"http_status" db:"http_status"` // 0, если ответа не было
	AudioBytes  int       `json:"audio_bytes" db:"audio_bytes"` // размер сохраненного аудио
	DurationMS  int64     `json:"duration_ms" db:"duration_ms"` // время запроса к сервису
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Succeeded проверяет, завершился ли вызов успешно
func (r *SynthesisRecord) Succeeded() bool {
	return r.Status == StatusSuccess
}
