package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Параметры синтеза, которые не настраиваются через окружение:
// интеграция с диалпланом рассчитана на один голос и один формат.
const (
	DefaultAPIURL      = "https://westeurope.tts.speech.microsoft.com/cognitiveservices/v1"
	DefaultVoice       = "cs-CZ-VlastaNeural"
	DefaultLanguage    = "cs-CZ"
	DefaultAudioFormat = "riff-8khz-16bit-mono-pcm" // 8kHz mono 16-bit PCM WAV для Asterisk
	DefaultRate        = "+15%"
	DefaultPitch       = "+5%"
	DefaultUserAgent   = "asterisk-tts"
	DefaultTimeout     = 5 * time.Second
)

// ErrMissingAPIKey возвращается, если ключ Microsoft TTS не задан
var ErrMissingAPIKey = errors.New("MICROSOFT_TTS_API_KEY не установлен")

// Config содержит все конфигурационные параметры приложения
type Config struct {
	TTS     TTSConfig
	Journal JournalConfig
	Metrics MetricsConfig
	App     AppConfig
}

// TTSConfig содержит настройки Microsoft TTS
type TTSConfig struct {
	APIKey   string   `env:"MICROSOFT_TTS_API_KEY"`
	APIURL   string   `env:"MICROSOFT_TTS_API_URL" envDefault:"https://westeurope.tts.speech.microsoft.com/cognitiveservices/v1"`
	FileMode FileMode `env:"MICROSOFT_TTS_FILE_MODE" envDefault:"0777"`

	Voice       string
	Language    string
	AudioFormat string
	Rate        string
	Pitch       string
	UserAgent   string
	Timeout     time.Duration
}

// JournalConfig содержит настройки журнала синтеза в PostgreSQL
type JournalConfig struct {
	DSN     string        `env:"TTS_JOURNAL_DSN"`
	Timeout time.Duration `env:"TTS_JOURNAL_TIMEOUT" envDefault:"2s"`
}

// MetricsConfig содержит настройки отправки метрик в Pushgateway
type MetricsConfig struct {
	PushgatewayURL string        `env:"TTS_PUSHGATEWAY_URL"`
	Job            string        `env:"TTS_METRICS_JOB" envDefault:"asterisk_tts"`
	Timeout        time.Duration `env:"TTS_METRICS_TIMEOUT" envDefault:"2s"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"TTS_LOG_FILE"`
}

// FileMode - права доступа к файлу, задаются в восьмеричном виде ("0777", "644")
type FileMode os.FileMode

// UnmarshalText разбирает восьмеричную строку прав доступа
func (m *FileMode) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return fmt.Errorf("некорректные права доступа %q: %w", s, err)
	}
	if v > 0o777 {
		return fmt.Errorf("права доступа %q вне диапазона 0-0777", s)
	}
	*m = FileMode(v)
	return nil
}

// Perm возвращает права в виде os.FileMode
func (m FileMode) Perm() os.FileMode {
	return os.FileMode(m).Perm()
}

// Load загружает конфигурацию из переменных окружения и .env
func Load() (*Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

// LoadFrom разбирает конфигурацию из переданного набора переменных без обращения к окружению процесса
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("ошибка разбора переменных окружения: %w", err)
	}

	cfg.TTS.APIKey = strings.TrimSpace(cfg.TTS.APIKey)
	if cfg.TTS.APIURL == "" {
		cfg.TTS.APIURL = DefaultAPIURL
	}
	cfg.TTS.Voice = DefaultVoice
	cfg.TTS.Language = DefaultLanguage
	cfg.TTS.AudioFormat = DefaultAudioFormat
	cfg.TTS.Rate = DefaultRate
	cfg.TTS.Pitch = DefaultPitch
	cfg.TTS.UserAgent = DefaultUserAgent
	cfg.TTS.Timeout = DefaultTimeout

	return cfg, nil
}

// Validate проверяет, что задан ключ API
func (c *TTSConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Enabled сообщает, включен ли журнал
func (c *JournalConfig) Enabled() bool {
	return c.DSN != ""
}

// Enabled сообщает, включена ли отправка метрик
func (c *MetricsConfig) Enabled() bool {
	return c.PushgatewayURL != ""
}

// GetLogLevel возвращает уровень логирования в формате zap
func (c *AppConfig) GetLogLevel() zap.AtomicLevel {
	switch c.LogLevel {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
