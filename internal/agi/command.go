package agi

import (
	"context"

	"asterisk-tts/internal/audio"
	"asterisk-tts/internal/config"
	"asterisk-tts/internal/journal"
	"asterisk-tts/internal/metrics"
	"asterisk-tts/internal/synth"
	"asterisk-tts/internal/tts"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Options задает зависимости команды. Пустые поля заполняются значениями по умолчанию.
type Options struct {
	// LoadConfig по умолчанию config.Load
	LoadConfig func() (*config.Config, error)
	// Logger по умолчанию строится из настроек App
	Logger *zap.Logger
}

// Execute запускает команду с аргументами args и возвращает код завершения процесса.
// Результат синтеза превращается в код возврата только здесь.
func Execute(args []string, opts Options) int {
	r := &runner{
		opts:   opts,
		result: synth.Failure(synth.ReasonInvalidArguments, nil),
	}

	cmd := newCommand(r)
	cmd.SetContext(context.Background())

	// Аргументы не проходят через поиск подкоманд cobra: текст вида
	// "__complete" иначе запустил бы скрытую команду автодополнения,
	// которая пишет в stdout
	if err := cmd.ValidateArgs(args); err != nil {
		r.result = synth.Failure(synth.ReasonInvalidArguments, err)
		r.fallbackLogger().Error("неверные аргументы", zap.Int("count", len(args)), zap.Error(err))
		return r.result.ExitCode()
	}

	if err := cmd.RunE(cmd, args); err != nil {
		r.result = synth.Failure(synth.ReasonConfigError, err)
	}

	return r.result.ExitCode()
}

// newCommand создает корневую команду AGI скрипта
func newCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "asterisk-tts <text> <output-path>",
		Short: "Синтез речи через Microsoft TTS для AGI Asterisk",
		Example: `same => n,AGI(asterisk-tts,"Dobrý den","/var/lib/asterisk/sounds/tts/greeting.wav")
same => n,Playback(tts/greeting)`,
		Args: cobra.ExactArgs(2),
		// Текст может начинаться с "-", все аргументы позиционные
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE:               r.run,
	}
}

type runner struct {
	opts   Options
	result synth.Result
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	load := r.opts.LoadConfig
	if load == nil {
		load = config.Load
	}

	cfg, err := load()
	if err != nil {
		r.result = synth.Failure(synth.ReasonConfigError, err)
		r.fallbackLogger().Error("ошибка загрузки конфигурации", zap.Error(err))
		return nil
	}

	logger := r.opts.Logger
	if logger == nil {
		logger = newLogger(cfg.App)
		defer logger.Sync()
	}

	ctx := cmd.Context()

	j, err := journal.Open(ctx, cfg.Journal, logger)
	if err != nil {
		logger.Warn("журнал синтеза недоступен", zap.Error(err))
		j = journal.Nop{}
	}
	defer j.Close()

	synthesizer := synth.New(logger,
		cfg.TTS,
		tts.NewAzureService(logger, cfg.TTS),
		audio.NewFileStore(logger),
		j,
		metrics.New(logger, cfg.Metrics),
	)

	r.result = synthesizer.Synthesize(ctx, args[0], args[1])
	return nil
}

func (r *runner) fallbackLogger() *zap.Logger {
	if r.opts.Logger != nil {
		return r.opts.Logger
	}
	return newLogger(config.AppConfig{LogLevel: "info"})
}
