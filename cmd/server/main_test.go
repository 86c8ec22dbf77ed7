package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/config"
	"github.com/chauanphu/xdoc-iu/internal/explain"
)

const geminiReply = `{"candidates":[{"content":{"role":"model","parts":[{"text":"` +
	"```json\\n{\\\"prediction\\\":{\\\"risk\\\":\\\"high\\\"}}\\n```" +
	`"}]},"finishReason":"STOP"}]}`

func setEnv(t *testing.T, predictorURL, geminiURL string) {
	t.Helper()
	t.Setenv("PREDICTOR_BASE_URL", predictorURL)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_BASE_URL", geminiURL)
	t.Setenv("LOCALE", "en")
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("LOG_LEVEL", "error")
}

func writeInput(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func runCLI(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, name)
	}

	predictor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record("predictor")
		if r.URL.Path != "/predict/diabetes/" {
			t.Errorf("unexpected predictor path %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode predictor body: %v", err)
		}
		if body["HbA1c"] != 7.2 {
			t.Errorf("expected HbA1c 7.2, got %v", body["HbA1c"])
		}
		if _, ok := body["Chol"]; ok {
			t.Errorf("null field forwarded: %v", body)
		}
		_, _ = w.Write([]byte(`"High risk"`))
	}))
	defer predictor.Close()

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record("generator")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiReply))
	}))
	defer gemini.Close()

	setEnv(t, predictor.URL, gemini.URL)
	input := writeInput(t, `{"HbA1c": 7.2, "Chol": null}`)

	out, err := runCLI("predict", "--condition", "diabetes", "--input", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mu.Lock()
	calls := strings.Join(order, ",")
	mu.Unlock()
	if calls != "predictor,generator" {
		t.Fatalf("unexpected call order %v", order)
	}

	var res map[string]any
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res["prediction"] != "High Risk" {
		t.Fatalf("expected High Risk, got %v", res["prediction"])
	}
	if res["apiResult"] != `"High risk"` {
		t.Fatalf("unexpected apiResult %v", res["apiResult"])
	}
	explanation, _ := res["explanation"].(map[string]any)
	if _, ok := explanation["prediction"]; !ok {
		t.Fatalf("expected parsed explanation, got %v", res["explanation"])
	}
	score, _ := res["trustScore"].(float64)
	if score < 75 || score >= 95 {
		t.Fatalf("trust score out of range: %v", score)
	}
}

func TestPredictCommandValidationMakesNoCalls(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected outbound call to %s", r.URL.Path)
	}))
	defer upstream.Close()

	setEnv(t, upstream.URL, upstream.URL)
	input := writeInput(t, `{"HbA1c": null, "Chol": null, "TG": null}`)

	_, err := runCLI("predict", "--condition", "diabetes", "--input", input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "VALIDATION_FAILED") || !strings.Contains(err.Error(), "Triglycerides") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPredictCommandRequiresCondition(t *testing.T) {
	if _, err := runCLI("predict"); err == nil {
		t.Fatal("expected error when --condition is missing")
	}
}

func TestReadInputFromStdin(t *testing.T) {
	raw, err := readInput("-", strings.NewReader(`{"blood_pressure": 140}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["blood_pressure"] != 140.0 {
		t.Fatalf("unexpected input %v", raw)
	}

	if _, err := readInput("-", strings.NewReader(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewGeneratorSelectsProvider(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:     config.ProviderAnthropic,
		AnthropicAPIKey: "k",
		AnthropicModel:  "m",
		LLMMaxTokens:    100,
	}
	gen, err := newGenerator(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*explain.AnthropicGenerator); !ok {
		t.Fatalf("expected anthropic generator, got %T", gen)
	}

	cfg.LLMProvider = config.ProviderGemini
	gen, err = newGenerator(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*explain.GeminiGenerator); !ok {
		t.Fatalf("expected gemini generator, got %T", gen)
	}

	cfg.LLMProvider = "openai"
	if _, err := newGenerator(cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRouterHealthz(t *testing.T) {
	setEnv(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	a, err := buildApp(t.Context(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer a.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/readyz", nil)
	a.router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"db":"disabled"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
