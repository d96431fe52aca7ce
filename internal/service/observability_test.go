package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingObserver captures events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) all() []UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]UseCaseEvent(nil), r.events...)
}

func TestLogUseCaseObserver_SuccessAndFailureLines(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "estimate",
		Duration: 42 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"project": "acme", "issue_count": 3},
	})
	out := buf.String()
	assert.Contains(t, out, "use_case=estimate")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "project=acme")
	assert.Contains(t, out, "issue_count=3")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "import",
		Err:  errors.New("snapshot rejected"),
	})
	out = buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "snapshot rejected")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	rec := &recordingObserver{}
	assert.Equal(t, UseCaseObserver(rec), useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}
