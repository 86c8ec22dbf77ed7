package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chauanphu/xdoc-iu/internal/apperr"
	"github.com/chauanphu/xdoc-iu/internal/condition"
	"github.com/chauanphu/xdoc-iu/internal/i18n"
	"github.com/chauanphu/xdoc-iu/internal/patient"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(url, timeout, i18n.New("en"), zap.NewNop())
}

func TestPredictSendsNormalizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/diagnosis/predict/cardiovascular/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"blood_pressure": 150.0, "cholesterol_level": 220.0}, body)

		_, _ = w.Write([]byte(`"High risk of heart disease"`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL+"/api/diagnosis", time.Second)
	text, err := client.Predict(context.Background(), condition.Cardiovascular, patient.Metrics{
		"blood_pressure":    150.0,
		"cholesterol_level": 220.0,
	})
	require.NoError(t, err)
	assert.Equal(t, `"High risk of heart disease"`, text)
	assert.Equal(t, HighRisk, Classify(text))
}

func TestPredictUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		descriptor condition.Descriptor
		status     int
		body       string
		wantMsg    string
	}{
		{
			name:       "cardiovascular raw text",
			descriptor: condition.Cardiovascular,
			status:     http.StatusUnprocessableEntity,
			body:       "field required",
			wantMsg:    "Error from API: field required",
		},
		{
			name:       "diabetes detail string",
			descriptor: condition.Diabetes,
			status:     http.StatusBadRequest,
			body:       `{"detail":"model not loaded"}`,
			wantMsg:    "model not loaded",
		},
		{
			name:       "diabetes detail list",
			descriptor: condition.Diabetes,
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":[{"loc":["body","HbA1c"]}]}`,
			wantMsg:    `[{"loc":["body","HbA1c"]}]`,
		},
		{
			name:       "cardiovascular raw text keeps whitespace",
			descriptor: condition.Cardiovascular,
			status:     http.StatusBadRequest,
			body:       "  bad input\n",
			wantMsg:    "Error from API:   bad input\n",
		},
		{
			name:       "diabetes empty detail string",
			descriptor: condition.Diabetes,
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":""}`,
			wantMsg:    "Error calling the prediction API",
		},
		{
			name:       "diabetes false detail",
			descriptor: condition.Diabetes,
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":false}`,
			wantMsg:    "Error calling the prediction API",
		},
		{
			name:       "diabetes zero detail",
			descriptor: condition.Diabetes,
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":0}`,
			wantMsg:    "Error calling the prediction API",
		},
		{
			name:       "diabetes empty detail list",
			descriptor: condition.Diabetes,
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":[]}`,
			wantMsg:    "Error calling the prediction API",
		},
		{
			name:       "diabetes numeric detail",
			descriptor: condition.Diabetes,
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":42}`,
			wantMsg:    "42",
		},
		{
			name:       "diabetes without detail",
			descriptor: condition.Diabetes,
			status:     http.StatusInternalServerError,
			body:       `<html>oops</html>`,
			wantMsg:    "Error calling the prediction API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, time.Second).Predict(context.Background(), tt.descriptor, patient.Metrics{"TG": 1.0})
			require.Error(t, err)

			var appErr *apperr.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.wantMsg, appErr.Message)
			assert.True(t, errors.Is(err, apperr.ErrUpstream))
		})
	}
}

func TestPredictTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestClient(srv.URL, 50*time.Millisecond).Predict(context.Background(), condition.Diabetes, patient.Metrics{"TG": 1.0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrTimeout))
	assert.False(t, errors.Is(err, apperr.ErrUpstreamUnavailable))
}

func TestPredictTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, time.Second).Predict(context.Background(), condition.Diabetes, patient.Metrics{"TG": 1.0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUpstreamUnavailable))

	var appErr *apperr.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want RiskLabel
	}{
		{"HIGH RISK", HighRisk},
		{`{"prediction":"high"}`, HighRisk},
		{"Highly likely", HighRisk},
		{"low risk", LowRisk},
		{"", LowRisk},
		{"0.93", LowRisk},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.text), tt.text)
		assert.Equal(t, Classify(tt.text), Classify(tt.text))
	}
	assert.Equal(t, "high", HighRisk.Level())
	assert.Equal(t, "low", LowRisk.Level())
}
