package services

import (
	"sync"
	"time"
)

type StepType string

const (
	StepCacheHit   StepType = "cache_hit"
	StepThinking   StepType = "thinking"
	StepToolCall   StepType = "tool_call"
	StepToolResult StepType = "tool_result"
	StepWarning    StepType = "warning"
	StepComplete   StepType = "complete"
	StepError      StepType = "error"
)

// Step is one progress event from a running analysis. Steps are ephemeral:
// they exist only for the duration of the call and are never persisted.
type Step struct {
	Type      StepType       `json:"type"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Progress is a bounded FIFO event channel between one Analyze call and its
// caller. When the consumer falls behind, the oldest buffered step is dropped
// so the producer never blocks. A nil *Progress is valid and discards all
// emissions.
type Progress struct {
	mu      sync.Mutex
	ch      chan Step
	closed  bool
	dropped int
}

func NewProgress(buffer int) *Progress {
	if buffer <= 0 {
		buffer = 16
	}
	return &Progress{ch: make(chan Step, buffer)}
}

// Emit appends a step, dropping the oldest buffered one if the consumer is
// slow. Safe to call on a nil receiver.
func (p *Progress) Emit(stepType StepType, message string, data map[string]any) {
	if p == nil {
		return
	}

	step := Step{
		Type:      stepType,
		Message:   message,
		Timestamp: time.Now(),
		Data:      data,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.ch <- step:
		return
	default:
	}

	// Buffer full: make room by discarding the oldest step, then retry.
	select {
	case <-p.ch:
		p.dropped++
	default:
	}
	select {
	case p.ch <- step:
	default:
	}
}

// Steps returns the consumer side of the channel. It is closed when the
// analysis finishes.
func (p *Progress) Steps() <-chan Step {
	if p == nil {
		return nil
	}
	return p.ch
}

// Close ends the stream. Further Emit calls are no-ops.
func (p *Progress) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
}

// Dropped reports how many steps were discarded because the consumer lagged.
func (p *Progress) Dropped() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}
