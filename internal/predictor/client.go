// Package predictor calls the external risk prediction service.
package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/apperr"
	"github.com/chauanphu/xdoc-iu/internal/condition"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/metrics"
	"github.com/chauanphu/xdoc-iu/internal/patient"
)

const target = "predictor"

type Client struct {
	http    *resty.Client
	timeout time.Duration
	msg     *i18n.Printer
	logger  *zap.Logger
}

// NewClient builds a client for baseURL. Each call is bounded by timeout and
// is never retried.
func NewClient(baseURL string, timeout time.Duration, msg *i18n.Printer, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetLogger(logger.Sugar()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json, text/plain")

	return &Client{
		http:    client,
		timeout: timeout,
		msg:     msg,
		logger:  logger,
	}
}

// Predict posts the normalized metrics to the condition's endpoint and
// returns the raw response text.
func (c *Client) Predict(ctx context.Context, d condition.Descriptor, body patient.Metrics) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("predictor request",
		zap.String("condition", d.Name),
		zap.Any("metrics", body),
	)

	start := time.Now()
	resp, err := c.http.R().
		SetContext(callCtx).
		SetBody(body).
		Post(d.UpstreamPath)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			metrics.ObserveUpstream(target, "timeout", elapsed)
			c.logger.Error("predictor call timed out",
				zap.String("condition", d.Name),
				zap.Duration("timeout", c.timeout),
			)
			return "", apperr.Timeout(target, err, c.msg.Sprintf(i18n.PredictorError))
		}
		metrics.ObserveUpstream(target, "transport_error", elapsed)
		c.logger.Error("predictor call failed",
			zap.String("condition", d.Name),
			zap.Error(err),
		)
		return "", apperr.UpstreamUnavailable(eris.Wrap(err, "predictor: send request"), c.msg.Sprintf(i18n.PredictorError))
	}

	if !resp.IsSuccess() {
		metrics.ObserveUpstream(target, "status_error", elapsed)
		c.logger.Error("predictor returned error",
			zap.String("condition", d.Name),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", apperr.Upstream(resp.StatusCode(), c.errorDetail(d.ErrorDetail, resp.Body()))
	}

	metrics.ObserveUpstream(target, "ok", elapsed)
	c.logger.Info("predictor call complete",
		zap.String("condition", d.Name),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", elapsed),
	)
	return resp.String(), nil
}

// errorDetail extracts the user-facing message from an upstream error body.
// The two predictor services report errors differently.
func (c *Client) errorDetail(mode condition.ErrorDetailMode, body []byte) string {
	switch mode {
	case condition.JSONDetail:
		var payload struct {
			Detail any `json:"detail"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || isEmptyDetail(payload.Detail) {
			return c.msg.Sprintf(i18n.PredictorError)
		}
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		b, err := json.Marshal(payload.Detail)
		if err != nil {
			return c.msg.Sprintf(i18n.PredictorError)
		}
		return string(b)
	default:
		return "Error from API: " + string(body)
	}
}

// isEmptyDetail reports whether an upstream detail carries nothing worth
// showing: null, "", false, 0, {} or [].
func isEmptyDetail(v any) bool {
	switch d := v.(type) {
	case nil:
		return true
	case string:
		return d == ""
	case bool:
		return !d
	case float64:
		return d == 0
	case map[string]any:
		return len(d) == 0
	case []any:
		return len(d) == 0
	}
	return false
}
