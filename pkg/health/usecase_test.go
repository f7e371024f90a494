package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name  string
	err   error
	calls int
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(context.Context) error {
	s.calls++
	return s.err
}

func TestReady(t *testing.T) {
	st, err := NewService().Ready(context.Background())
	require.NoError(t, err)
	assert.Empty(t, st)

	down := errors.New("connection refused")
	a := &stubChecker{name: "redis", err: down}
	b := &stubChecker{name: "llm"}
	st, err = NewService(a, b).Ready(context.Background())
	assert.ErrorIs(t, err, down)
	assert.EqualError(t, err, "redis: connection refused")
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, []Status{
		{Name: "redis", OK: false, Error: "connection refused"},
		{Name: "llm", OK: true},
	}, st)
}
