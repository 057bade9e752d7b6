package tts

import (
	"fmt"

	"asterisk-tts/internal/config"
)

const ssmlTemplate = `<speak xmlns="http://www.w3.org/2001/10/synthesis" xmlns:mstts="http://www.w3.org/2001/mstts" xmlns:emo="http://www.w3.org/2009/10/emotionml" version="1.0" xml:lang="%s">
    <voice name="%s">
        <prosody rate="%s" pitch="%s">%s</prosody>
    </voice>
</speak>`

// Request описывает один запрос на синтез речи
type Request struct {
	Text     string
	Voice    string
	Format   string
	Language string
	Rate     string
	Pitch    string
}

// NewRequest собирает запрос из текста и настроек TTS
func NewRequest(text string, cfg config.TTSConfig) Request {
	return Request{
		Text:     text,
		Voice:    cfg.Voice,
		Format:   cfg.AudioFormat,
		Language: cfg.Language,
		Rate:     cfg.Rate,
		Pitch:    cfg.Pitch,
	}
}

// SSML возвращает документ разметки для сервиса синтеза.
// Текст вставляется как есть, без экранирования: символы <, & и " в тексте
// ломают документ, вызывающая сторона должна передавать безопасный текст.
func (r Request) SSML() string {
	return fmt.Sprintf(ssmlTemplate, r.Language, r.Voice, r.Rate, r.Pitch, r.Text)
}
