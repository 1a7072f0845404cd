package engine

import (
	"context"
	"time"
)

// Engine is the external transformation service. The contract is send text,
// receive transformed text; latency and quality are unspecified.
type Engine interface {
	Transform(ctx context.Context, text string) (string, error)
}

// StubEngine stands in for a real humanization model. It appends a canned
// explanation to the input after a configured processing delay.
type StubEngine struct {
	delay time.Duration
}

func NewStubEngine(delay time.Duration) *StubEngine {
	return &StubEngine{delay: delay}
}

const cannedSuffix = `

This is the humanized version of your text. In a production environment, this would be processed by our AI humanization engine to make it sound more natural and human-written, while maintaining the original meaning.

The humanized text would have varied sentence structures, natural language patterns, and would effectively bypass AI detection tools.`

func (e *StubEngine) Transform(ctx context.Context, text string) (string, error) {
	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return text + cannedSuffix, nil
}
