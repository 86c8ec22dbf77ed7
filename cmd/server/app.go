package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/config"
	"github.com/chauanphu/xdoc-iu/internal/database"
	"github.com/chauanphu/xdoc-iu/internal/diagnosis"
	"github.com/chauanphu/xdoc-iu/internal/explain"
	"github.com/chauanphu/xdoc-iu/internal/history"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/predictor"
	"github.com/chauanphu/xdoc-iu/internal/server"
)

// app holds everything built from the configuration at startup.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	msg      *i18n.Printer
	service  *diagnosis.Service
	recorder history.Recorder
	pool     *pgxpool.Pool
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	msg := i18n.New(cfg.Locale)

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, msg: msg, recorder: history.Noop{}}

	if cfg.EnableDB {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store := history.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		a.pool = pool
		a.recorder = store
	}

	pred := predictor.NewClient(cfg.PredictorBaseURL, cfg.PredictorTimeout, msg, logger)
	synth := explain.NewSynthesizer(gen, cfg.LLMTimeout, msg, logger)
	a.service = diagnosis.NewService(pred, synth, msg, logger, diagnosis.WithRecorder(a.recorder))
	return a, nil
}

func newGenerator(cfg *config.Config, logger *zap.Logger) (explain.Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return explain.NewGeminiGenerator(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMMaxTokens, logger), nil
	case config.ProviderAnthropic:
		return explain.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMMaxTokens), nil
	default:
		return nil, eris.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

func (a *app) router() *gin.Engine {
	opts := server.Options{
		Diagnoser:      a.service,
		History:        a.recorder,
		Messages:       a.msg,
		Logger:         a.logger,
		RateLimitRPS:   a.cfg.RateLimitRPS,
		RateLimitBurst: a.cfg.RateLimitBurst,
	}
	if a.pool != nil {
		opts.DB = a.pool
	}
	return server.NewRouter(opts)
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
