package batch

import (
	"context"
	"io"
)

// Source is a pull-based, one-pass sequence of values. Next blocks until a value
// is available, the sequence ends (io.EOF), or ctx is done.
type Source[T any] interface {
	Next(ctx context.Context) (T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) (T, error)

// Next implements Source.
func (f SourceFunc[T]) Next(ctx context.Context) (T, error) { return f(ctx) }

// ChannelSource reads values from a channel until it is closed.
type ChannelSource[T any] struct {
	ch <-chan T
}

// NewChannelSource returns a Source backed by ch. The producer signals the end
// of the sequence by closing ch.
func NewChannelSource[T any](ch <-chan T) *ChannelSource[T] {
	return &ChannelSource[T]{ch: ch}
}

// Next implements Source.
func (s *ChannelSource[T]) Next(ctx context.Context) (T, error) {
	var zero T
	select {
	case v, ok := <-s.ch:
		if !ok {
			return zero, io.EOF
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// SliceSource yields the elements of a slice in order.
type SliceSource[T any] struct {
	items []T
	pos   int
}

// NewSliceSource returns a Source over items.
func NewSliceSource[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Next implements Source.
func (s *SliceSource[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if s.pos >= len(s.items) {
		return zero, io.EOF
	}
	v := s.items[s.pos]
	s.pos++
	return v, nil
}
