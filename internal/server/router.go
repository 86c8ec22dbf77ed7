// Package server exposes the diagnosis pipeline over HTTP and serves the
// form views.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/diagnosis"
	"github.com/chauanphu/xdoc-iu/internal/history"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/metrics"
)

const maxBodyBytes = 1 << 20

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Diagnoser interface {
	Run(ctx context.Context, condition string, raw map[string]any) (*diagnosis.Result, error)
}

type Options struct {
	Diagnoser Diagnoser
	History   history.Recorder
	// DB is nil when the database is disabled.
	DB       HealthChecker
	Messages *i18n.Printer
	Logger   *zap.Logger
	// RateLimitRPS <= 0 disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

type handler struct {
	diag    Diagnoser
	history history.Recorder
	db      HealthChecker
	msg     *i18n.Printer
	logger  *zap.Logger
}

func NewRouter(opts Options) *gin.Engine {
	if opts.History == nil {
		opts.History = history.Noop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &handler{
		diag:    opts.Diagnoser,
		history: opts.History,
		db:      opts.DB,
		msg:     opts.Messages,
		logger:  opts.Logger,
	}

	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(opts.Logger),
		recovery(opts.Logger, opts.Messages),
		metrics.Middleware(),
		limitBodySize(maxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	mountViews(router, opts.Messages)

	router.GET("/healthz", h.healthz)
	router.GET("/readyz", h.readyz)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	predict := []gin.HandlerFunc{h.predict}
	if opts.RateLimitRPS > 0 {
		limiter := newIPRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)
		predict = append([]gin.HandlerFunc{limiter.middleware(opts.Messages)}, predict...)
	}
	router.POST("/predict/:condition", predict...)

	api := router.Group("/api/diagnosis")
	api.POST("/predict/:condition", predict...)
	api.GET("/history", h.listHistory)

	return router
}
