package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/icebreaker/pkg/llm"
)

func TestAskSendsPromptsAndSampling(t *testing.T) {
	var got chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "icebreaker", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"1","choices":[{"index":0,"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "key", BaseURL: srv.URL + "/", Model: "m", AppTitle: "icebreaker", Temperature: 0.7, MaxTokens: 2000})
	out, err := c.Ask(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 2000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
}

func TestAskErrors(t *testing.T) {
	_, err := New(Config{}).Ask(context.Background(), "", "x")
	assert.ErrorIs(t, err, llm.ErrEmptyAPIKey)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()
	_, err = New(Config{APIKey: "k", BaseURL: srv.URL}).Ask(context.Background(), "", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer empty.Close()
	_, err = New(Config{APIKey: "k", BaseURL: empty.URL}).Ask(context.Background(), "", "x")
	assert.EqualError(t, err, "no choices returned by model")
}
