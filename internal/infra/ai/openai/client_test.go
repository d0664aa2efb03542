package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhnext/launchpad/internal/domain/ai"
	"github.com/dhnext/launchpad/internal/domain/compliance"
)

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.EqualValues(t, 2048, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"[{\"name\":\"SOC 2\"}]"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "", srv.URL+"/v1", nil)
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), "prompt", ai.DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"SOC 2"}]`, out)
}

func TestGenerate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o", srv.URL+"/v1", srv.Client())
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "prompt", ai.DefaultGenerateOptions())

	var te *compliance.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "openai", te.Service)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
}

func TestIsReasoningModel(t *testing.T) {
	assert.True(t, isReasoningModel("o3-2025-04-16"))
	assert.True(t, isReasoningModel("gpt-5-mini"))
	assert.False(t, isReasoningModel("gpt-4o-mini"))
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("", "", "", nil)
	assert.ErrorIs(t, err, ai.ErrMissingAPIKey)
}
