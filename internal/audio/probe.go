package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/faiface/beep/wav"
)

// Format описывает параметры PCM потока из заголовка WAV
type Format struct {
	SampleRate  int
	NumChannels int
	Precision   int // байт на сэмпл
}

// Telephony - формат riff-8khz-16bit-mono-pcm, который ожидает Asterisk
var Telephony = Format{SampleRate: 8000, NumChannels: 1, Precision: 2}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%dbit", f.SampleRate, f.NumChannels, f.Precision*8)
}

// Probe читает заголовок WAV из ответа сервиса синтеза.
// Данные не изменяются: результат используется только для диагностики.
func Probe(data []byte) (Format, error) {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return Format{}, fmt.Errorf("ошибка разбора заголовка WAV: %w", err)
	}
	defer streamer.Close()

	return Format{
		SampleRate:  int(format.SampleRate),
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	}, nil
}
