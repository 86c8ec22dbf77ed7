package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/apperr"
	"github.com/chauanphu/xdoc-iu/internal/config"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/logging"
)

const serviceName = "xdoc"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Health risk prediction with generated explanations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newPredictCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newPredictCmd() *cobra.Command {
	var conditionName, input string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Run one diagnosis and print the JSON result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd.Context(), conditionName, input, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&conditionName, "condition", "", "condition name (cardiovascular or diabetes)")
	cmd.Flags().StringVar(&input, "input", "-", "JSON file with patient metrics, - for stdin")
	_ = cmd.MarkFlagRequired("condition")
	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return eris.Wrap(err, "build logger")
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// A request may wait on both outbound calls.
		WriteTimeout: cfg.PredictorTimeout + cfg.LLMTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("server listening",
		zap.String("port", cfg.Port),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.Bool("db_enabled", cfg.EnableDB),
	)
	return waitForShutdown(server, errCh, logger)
}

func waitForShutdown(server *http.Server, errCh <-chan error, logger *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		return eris.Wrap(err, "listen")
	case <-stop:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return eris.Wrap(err, "shutdown")
	}
	return nil
}

func runPredict(ctx context.Context, conditionName, input string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout carries only the result.
	logger, err := logging.New(cfg.LogLevel, "console", serviceName)
	if err != nil {
		return eris.Wrap(err, "build logger")
	}
	defer func() { _ = logger.Sync() }()

	raw, err := readInput(input, stdin)
	if err != nil {
		return err
	}

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.service.Run(ctx, conditionName, raw)
	if err != nil {
		appErr := apperr.From(err, a.msg.Sprintf(i18n.SystemError))
		return fmt.Errorf("%s (%s)", appErr.Message, appErr.Code)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func readInput(input string, stdin io.Reader) (map[string]any, error) {
	r := stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, eris.Wrapf(err, "open %s", input)
		}
		defer f.Close()
		r = f
	}

	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, eris.Wrap(err, "decode input")
	}
	return raw, nil
}
