package synth

import (
	"fmt"
	"time"
)

// Reason - причина неудачного синтеза
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInvalidArguments
	ReasonConfigError
	ReasonMissingCredential
	ReasonHTTPError
	ReasonNetworkError
	ReasonWriteError
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonInvalidArguments:
		return "invalid_arguments"
	case ReasonConfigError:
		return "config_error"
	case ReasonMissingCredential:
		return "missing_credential"
	case ReasonHTTPError:
		return "http_error"
	case ReasonNetworkError:
		return "network_error"
	case ReasonWriteError:
		return "write_error"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Result - итог одного вызова синтеза. Процесс превращает его в код возврата
// только в точке входа.
type Result struct {
	Reason     Reason
	StatusCode int // HTTP статус ответа сервиса, 0 если ответа не было
	AudioBytes int
	Duration   time.Duration
	Err        error
}

// Success создает успешный результат
func Success(audioBytes int, duration time.Duration) Result {
	return Result{
		Reason:     ReasonNone,
		StatusCode: 200,
		AudioBytes: audioBytes,
		Duration:   duration,
	}
}

// Failure создает неуспешный результат
func Failure(reason Reason, err error) Result {
	return Result{Reason: reason, Err: err}
}

// OK сообщает, был ли файл записан
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// ExitCode возвращает код завершения процесса: 0 - файл записан, 1 - любая ошибка
func (r Result) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}
