package agi

import (
	"asterisk-tts/internal/config"

	"go.uber.org/zap"
)

// newLogger инициализирует логгер. Stdout AGI процесса читает Asterisk,
// поэтому логи пишутся только в stderr и, при необходимости, в файл.
func newLogger(app config.AppConfig) *zap.Logger {
	zc := zap.NewProductionConfig()
	zc.Level = app.GetLogLevel()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if app.LogFile != "" {
		zc.OutputPaths = append(zc.OutputPaths, app.LogFile)
	}

	logger, err := zc.Build()
	if err == nil {
		return logger
	}

	// Файл логов недоступен: продолжаем только со stderr
	zc.OutputPaths = []string{"stderr"}
	logger, fallbackErr := zc.Build()
	if fallbackErr != nil {
		return zap.NewNop()
	}
	logger.Warn("ошибка открытия файла логов", zap.String("path", app.LogFile), zap.Error(err))
	return logger
}
