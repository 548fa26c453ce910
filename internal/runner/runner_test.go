package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockStep implements Step for testing.
type MockStep struct {
	id     string
	err    error
	called bool
}

func (m *MockStep) ID() string {
	return m.id
}

func (m *MockStep) Run(ctx context.Context) error {
	m.called = true
	return m.err
}

func TestRunner_Run(t *testing.T) {
	out := &bytes.Buffer{}
	s1 := &MockStep{id: "s1"}
	s2 := &MockStep{id: "s2"}

	summary, err := New(out, nil).Run(context.Background(), []Step{s1, s2})
	require.NoError(t, err)

	assert.True(t, s1.called)
	assert.True(t, s2.called)
	assert.Equal(t, "pass", summary.Status)
	assert.Equal(t, []StepResult{
		{Step: "s1", Status: StatusPass},
		{Step: "s2", Status: StatusPass},
	}, summary.Results)
	assert.Contains(t, out.String(), "STEP: s1")
	assert.Contains(t, out.String(), "PASS: s2")
}

func TestRunner_Run_StopsAtFailure(t *testing.T) {
	boom := errors.New("boom")
	s1 := &MockStep{id: "s1", err: boom}
	s2 := &MockStep{id: "s2"}

	summary, err := New(nil, nil).Run(context.Background(), []Step{s1, s2})
	require.Error(t, err)

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s1")
	assert.True(t, s1.called)
	assert.False(t, s2.called) // fail-fast
	assert.Equal(t, "fail", summary.Status)
	assert.Equal(t, "s1", summary.Failed)
}

func TestRunner_Run_Skip(t *testing.T) {
	out := &bytes.Buffer{}
	s1 := &MockStep{id: "git:tag", err: Skip("dry mode")}
	s2 := NewStep("s2", func(ctx context.Context) error { return nil })

	summary, err := New(out, nil).Run(context.Background(), []Step{s1, s2})
	require.NoError(t, err)

	assert.Equal(t, StatusSkip, summary.Results[0].Status)
	assert.Equal(t, "dry mode", summary.Results[0].Note)
	assert.Equal(t, StatusPass, summary.Results[1].Status)
	assert.Contains(t, out.String(), "SKIP: git:tag (dry mode)")
}

func TestRunner_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s1 := &MockStep{id: "s1"}

	_, err := New(nil, nil).Run(ctx, []Step{s1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s1.called)
}
