package explain

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// GeminiGenerator calls the Gemini generateContent REST endpoint.
type GeminiGenerator struct {
	http      *resty.Client
	model     string
	maxTokens int64
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int64 `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func NewGeminiGenerator(baseURL, apiKey, model string, maxTokens int64, logger *zap.Logger) *GeminiGenerator {
	client := resty.New().
		SetBaseURL(baseURL).
		SetLogger(logger.Sugar()).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey)

	return &GeminiGenerator{http: client, model: model, maxTokens: maxTokens}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var req geminiRequest
	req.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	req.GenerationConfig.MaxOutputTokens = g.maxTokens

	var out geminiResponse
	resp, err := g.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/models/" + url.PathEscape(g.model) + ":generateContent")
	if err != nil {
		return "", eris.Wrap(err, "gemini: send request")
	}
	if !resp.IsSuccess() {
		return "", eris.Errorf("gemini: unexpected status %d: %s", resp.StatusCode(), resp.String())
	}

	if len(out.Candidates) == 0 {
		if out.PromptFeedback.BlockReason != "" {
			return "", eris.Errorf("gemini: prompt blocked: %s", out.PromptFeedback.BlockReason)
		}
		return "", eris.New("gemini: empty response")
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
