// Package diagnosis runs one request through the pipeline: normalize,
// validate, predict, attribute, explain.
package diagnosis

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/apperr"
	"github.com/chauanphu/xdoc-iu/internal/attribution"
	"github.com/chauanphu/xdoc-iu/internal/condition"
	"github.com/chauanphu/xdoc-iu/internal/explain"
	"github.com/chauanphu/xdoc-iu/internal/history"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/metrics"
	"github.com/chauanphu/xdoc-iu/internal/patient"
	"github.com/chauanphu/xdoc-iu/internal/predictor"
)

type Predictor interface {
	Predict(ctx context.Context, d condition.Descriptor, body patient.Metrics) (string, error)
}

type Explainer interface {
	// Explain reports ok=false when the document is the unparsed fallback.
	Explain(ctx context.Context, in explain.PromptInput) (doc explain.Document, ok bool, err error)
}

// ConfidenceSource returns the displayed trust score. It is a placeholder in
// [75, 95) and is not derived from the model output.
type ConfidenceSource func() float64

func PlaceholderConfidence() float64 {
	return 75 + rand.Float64()*20
}

type Result struct {
	Prediction   predictor.RiskLabel `json:"prediction"`
	TrustScore   float64             `json:"trustScore"`
	Explanation  explain.Document    `json:"explanation"`
	APIResult    string              `json:"apiResult"`
	Attributions attribution.Set     `json:"attributions"`
}

type Service struct {
	predictor  Predictor
	explainer  Explainer
	recorder   history.Recorder
	confidence ConfidenceSource
	msg        *i18n.Printer
	logger     *zap.Logger
}

type Option func(*Service)

func WithRecorder(r history.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithConfidence(c ConfidenceSource) Option {
	return func(s *Service) { s.confidence = c }
}

func NewService(p Predictor, e Explainer, msg *i18n.Printer, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		predictor:  p,
		explainer:  e,
		recorder:   history.Noop{},
		confidence: PlaceholderConfidence,
		msg:        msg,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run diagnoses raw for the named condition. Validation errors are returned
// before any outbound call; a predictor or generator failure ends the run.
func (s *Service) Run(ctx context.Context, conditionName string, raw map[string]any) (*Result, error) {
	d, ok := condition.Lookup(conditionName)
	if !ok {
		return nil, apperr.NotFound(s.msg.Sprintf(i18n.UnknownCondition, conditionName))
	}

	m, err := patient.Normalize(raw, d, s.msg)
	if err != nil {
		return nil, err
	}
	if err := patient.Validate(m, d, s.msg); err != nil {
		return nil, err
	}

	text, err := s.predictor.Predict(ctx, d, m)
	if err != nil {
		return nil, err
	}
	label := predictor.Classify(text)
	metrics.RecordPrediction(d.Name, string(label))

	attrs := attribution.Estimate(m, d.Attributions)
	confidence := s.confidence()

	doc, explained, err := s.explainer.Explain(ctx, explain.PromptInput{
		Condition:    d,
		Metrics:      m,
		Attributions: attrs,
		Label:        label,
		Confidence:   confidence,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Prediction:   label,
		TrustScore:   confidence,
		Explanation:  doc,
		APIResult:    text,
		Attributions: attrs,
	}
	s.record(ctx, d.Name, res, explained)

	s.logger.Info("diagnosis complete",
		zap.String("condition", d.Name),
		zap.String("prediction", string(label)),
		zap.Int("fields", len(m)),
	)
	return res, nil
}

// record stores a summary. Failures are logged only.
func (s *Service) record(ctx context.Context, name string, res *Result, explained bool) {
	if !s.recorder.Enabled() {
		return
	}

	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()

	err := s.recorder.Record(recCtx, history.Record{
		Condition:     name,
		Prediction:    string(res.Prediction),
		TrustScore:    res.TrustScore,
		ExplanationOK: explained,
	})
	if err != nil {
		s.logger.Warn("failed to record diagnosis", zap.String("condition", name), zap.Error(err))
	}
}
