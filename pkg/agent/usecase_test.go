package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/icebreaker/pkg/llm"
)

func TestRunPipeline(t *testing.T) {
	s, sc, p := testTools()
	d := &scriptedDecider{script: []any{
		Search{Query: "Jane Smith"},
		Identify{},
		Scrape{URL: "https://github.com/jane"},
	}}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{MaxIterations: 5, MaxExecutionTime: time.Minute}, nil)
	synth := NewSynthesizer(llm.ChatFunc(func(context.Context, string, string) (string, error) {
		return "1. How did you start with key-value stores?", nil
	}), nil)

	res := NewService(loop, synth, nil).RunPipeline(context.Background(), "Jane Smith")
	assert.Equal(t, []string{"How did you start with key-value stores?"}, res.IceBreakers)
	require.Len(t, res.Sources, 2)
	assert.Equal(t, "GitHub", res.Sources[0].Platform)
	assert.GreaterOrEqual(t, res.ExecutionTime, 0.0)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "ice_breakers")
	assert.Contains(t, decoded, "sources")
	assert.Contains(t, decoded, "execution_time")
}

func TestRunPipelineNeverFails(t *testing.T) {
	s, sc, p := testTools()
	d := &scriptedDecider{script: []any{errors.New("llm unavailable")}}
	loop := NewLoop(d, Tools{Search: s, Scraper: sc, Profiles: p}, Limits{}, nil)
	synth := NewSynthesizer(llm.ChatFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("llm unavailable")
	}), nil)

	res := NewService(loop, synth, nil).RunPipeline(context.Background(), "Jane Smith")
	assert.Equal(t, Fallback("Jane Smith"), res.IceBreakers)
	assert.Empty(t, res.Sources)
	assert.NotNil(t, res.Sources)
}
