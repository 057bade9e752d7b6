package tts

import "fmt"

// StatusError - сервис ответил статусом, отличным от 200
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("неожиданный статус от Microsoft TTS: %d, тело: %s", e.StatusCode, e.Body)
}

// NetworkError - ошибка сетевого уровня: отказ в соединении, таймаут, DNS, TLS
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ошибка %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
