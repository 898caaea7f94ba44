package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Default batching configuration.
const (
	// DefaultBatchSize is the number of values per window.
	DefaultBatchSize = 100

	// MinBatchSize is the smallest allowed window.
	MinBatchSize = 1

	// MaxBatchSize is the largest allowed window.
	MaxBatchSize = 10000
)

// Common batching errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 10000")
	ErrNilSource        = errors.New("batch source cannot be nil")
	ErrSourceFailed     = errors.New("source failed")
)

// Batcher groups values pulled from a Source into windows of a fixed size.
// It is not safe for concurrent use.
type Batcher[T any] struct {
	src       Source[T]
	size      int
	exhausted bool
	pulls     int
}

// NewBatcher creates a batcher that pulls windows of size values from src.
func NewBatcher[T any](src Source[T], size int) (*Batcher[T], error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if size < MinBatchSize || size > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}
	return &Batcher[T]{src: src, size: size}, nil
}

// NewBatcherWithDefaults creates a batcher with DefaultBatchSize.
func NewBatcherWithDefaults[T any](src Source[T]) *Batcher[T] {
	return &Batcher[T]{src: src, size: DefaultBatchSize}
}

// NextWindow pulls up to Size values. A window shorter than Size means the
// source is exhausted; every later call returns an empty window without pulling.
//
// If the source fails, the batcher is exhausted and the partial window is
// returned together with an error wrapping ErrSourceFailed. If ctx is done,
// ctx.Err() is returned and the partial window should be discarded.
func (b *Batcher[T]) NextWindow(ctx context.Context) ([]T, error) {
	if b.exhausted {
		return nil, nil
	}

	window := make([]T, 0, b.size)
	for len(window) < b.size {
		b.pulls++
		v, err := b.src.Next(ctx)
		if err != nil {
			b.exhausted = true
			switch {
			case errors.Is(err, io.EOF):
				return window, nil
			case ctx.Err() != nil:
				return window, ctx.Err()
			default:
				return window, fmt.Errorf("%w after %d values in window: %w", ErrSourceFailed, len(window), err)
			}
		}
		window = append(window, v)
	}

	return window, nil
}

// Size returns the configured window size.
func (b *Batcher[T]) Size() int {
	return b.size
}

// Exhausted reports whether the source has signalled its end.
func (b *Batcher[T]) Exhausted() bool {
	return b.exhausted
}

// Pulls returns how many times the source has been asked for a value.
func (b *Batcher[T]) Pulls() int {
	return b.pulls
}
