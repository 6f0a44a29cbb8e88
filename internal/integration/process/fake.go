package process

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Fake is a Runner that never starts a process.
// By default it succeeds and echoes the source as output.
type Fake struct {
	// Respond computes the result for a source. Nil echoes the source.
	Respond func(source string) (Result, error)

	// Gate, when set, blocks each run until it is closed or ctx is done.
	Gate chan struct{}

	mu      sync.Mutex
	sources []string
}

// Run records source and returns the configured result.
func (f *Fake) Run(ctx context.Context, source string) (Result, error) {
	f.mu.Lock()
	f.sources = append(f.sources, source)
	f.mu.Unlock()

	id := uuid.New().String()
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return cancelled(id, 0), fmt.Errorf("run %s: %w: %w", id, ErrCancelled, ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return cancelled(id, 0), fmt.Errorf("run %s: %w: %w", id, ErrCancelled, err)
	}

	if f.Respond == nil {
		return Result{ID: id, Output: source, Succeeded: true}, nil
	}
	res, err := f.Respond(source)
	if res.ID == "" {
		res.ID = id
	}
	return res, err
}

// Sources returns every source passed to Run, in order.
func (f *Fake) Sources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sources...)
}
