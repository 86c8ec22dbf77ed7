// Package explain turns a prediction into a structured natural-language
// explanation using a text generation model.
package explain

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/apperr"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/metrics"
)

const target = "generator"

// Generator completes a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Synthesizer struct {
	gen     Generator
	timeout time.Duration
	msg     *i18n.Printer
	logger  *zap.Logger
}

func NewSynthesizer(gen Generator, timeout time.Duration, msg *i18n.Printer, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{gen: gen, timeout: timeout, msg: msg, logger: logger}
}

// Explain builds the prompt, calls the generator and parses its output. A
// generator failure is returned as an error; unparseable output is not, it is
// encoded in the returned document and ok is false.
func (s *Synthesizer) Explain(ctx context.Context, in PromptInput) (doc Document, ok bool, err error) {
	if in.Language == "" {
		in.Language = s.msg.Sprintf(i18n.AnswerLanguage)
	}
	if in.Messages == nil {
		in.Messages = s.msg
	}
	prompt := BuildPrompt(in)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.gen.Generate(callCtx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			metrics.ObserveUpstream(target, "timeout", elapsed)
			s.logger.Error("explanation generation timed out",
				zap.String("condition", in.Condition.Name),
				zap.Duration("timeout", s.timeout),
				zap.Error(err),
			)
			return nil, false, apperr.Timeout(target, err, s.msg.Sprintf(i18n.SystemError))
		}
		metrics.ObserveUpstream(target, "error", elapsed)
		s.logger.Error("explanation generation failed",
			zap.String("condition", in.Condition.Name),
			zap.Error(err),
		)
		return nil, false, apperr.Generator(err, s.msg.Sprintf(i18n.SystemError))
	}
	metrics.ObserveUpstream(target, "ok", elapsed)

	doc, ok = Parse(text, s.msg.Sprintf(i18n.ExplanationError))
	if !ok {
		metrics.RecordParseFailure(in.Condition.Name)
		s.logger.Warn("explanation was not valid JSON",
			zap.String("condition", in.Condition.Name),
			zap.Int("length", len(text)),
		)
	}
	return doc, ok, nil
}
