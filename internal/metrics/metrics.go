package metrics

import (
	"context"
	"fmt"
	"os"

	"asterisk-tts/internal/config"
	"asterisk-tts/pkg/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// Reporter собирает метрики одного запуска и отправляет их в Pushgateway.
// Процесс живет один вызов, поэтому вместо счетчиков используются gauge
// "последнего запуска", как принято для batch-задач.
type Reporter struct {
	logger   *zap.Logger
	cfg      config.MetricsConfig
	instance string

	lastRunTimestamp     prometheus.Gauge
	lastRunDuration      prometheus.Gauge
	lastRunSuccess       prometheus.Gauge
	lastHTTPStatus       prometheus.Gauge
	lastAudioBytes       prometheus.Gauge
	lastSuccessTimestamp prometheus.Gauge

	// Счетчик и гистограмма в пределах одного процесса: Pushgateway хранит
	// значения последнего запуска с данного instance
	runs            *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	succeeded bool
}

// New создает новый экземпляр метрик
func New(logger *zap.Logger, cfg config.MetricsConfig) *Reporter {
	instance, err := os.Hostname()
	if err != nil {
		instance = "unknown"
	}

	return &Reporter{
		logger:   logger,
		cfg:      cfg,
		instance: instance,

		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "asterisk_tts_last_run_timestamp_seconds",
			Help: "Время последнего запуска синтеза",
		}),
		lastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "asterisk_tts_last_run_duration_seconds",
			Help: "Длительность запроса к сервису синтеза в последнем запуске",
		}),
		lastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "asterisk_tts_last_run_success",
			Help: "1, если последний запуск записал файл, иначе 0",
		}),
		lastHTTPStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "asterisk_tts_last_http_status",
			Help: "HTTP статус последнего ответа сервиса синтеза, 0 без ответа",
		}),
		lastAudioBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "asterisk_tts_last_audio_bytes",
			Help: "Размер аудио, сохраненного последним запуском",
		}),
		lastSuccessTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "asterisk_tts_last_success_timestamp_seconds",
			Help: "Время последнего успешного синтеза",
		}),

		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asterisk_tts_runs_total",
				Help: "Количество запусков синтеза",
			},
			[]string{"reason"}, // success, missing_credential, http_error, network_error, write_error
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "asterisk_tts_request_duration_seconds",
				Help:    "Время запроса к сервису синтеза в секундах",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"}, // success, failure
		),
	}
}

// Observe записывает результат вызова в gauge
func (r *Reporter) Observe(rec *models.SynthesisRecord) {
	ts := float64(rec.CreatedAt.UnixNano()) / 1e9

	r.lastRunTimestamp.Set(ts)
	r.lastRunDuration.Set(float64(rec.DurationMS) / 1000)
	r.lastHTTPStatus.Set(float64(rec.HTTPStatus))
	r.lastAudioBytes.Set(float64(rec.AudioBytes))

	reason := rec.Reason
	if reason == "" {
		reason = models.StatusSuccess
	}
	r.runs.WithLabelValues(reason).Inc()
	r.requestDuration.WithLabelValues(rec.Status).Observe(float64(rec.DurationMS) / 1000)

	r.succeeded = rec.Succeeded()
	if r.succeeded {
		r.lastRunSuccess.Set(1)
		r.lastSuccessTimestamp.Set(ts)
	} else {
		r.lastRunSuccess.Set(0)
	}

	r.logger.Debug("метрики обновлены",
		zap.String("status", rec.Status),
		zap.Int64("duration_ms", rec.DurationMS))
}

// Record обновляет метрики и отправляет их, если Pushgateway настроен
func (r *Reporter) Record(ctx context.Context, rec *models.SynthesisRecord) error {
	r.Observe(rec)
	if !r.cfg.Enabled() {
		return nil
	}
	return r.Push(ctx)
}

// Push отправляет метрики в Pushgateway методом POST: время последнего
// успеха сохраняется в группе, даже если текущий запуск неудачный
func (r *Reporter) Push(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	pusher := push.New(r.cfg.PushgatewayURL, r.cfg.Job).
		Grouping("instance", r.instance).
		Collector(r.lastRunTimestamp).
		Collector(r.lastRunDuration).
		Collector(r.lastRunSuccess).
		Collector(r.lastHTTPStatus).
		Collector(r.lastAudioBytes).
		Collector(r.runs).
		Collector(r.requestDuration)
	if r.succeeded {
		pusher = pusher.Collector(r.lastSuccessTimestamp)
	}

	if err := pusher.AddContext(ctx); err != nil {
		return fmt.Errorf("ошибка отправки метрик в Pushgateway: %w", err)
	}

	r.logger.Debug("метрики отправлены", zap.String("pushgateway", r.cfg.PushgatewayURL))
	return nil
}
