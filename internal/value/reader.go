package value

import (
	"context"
	"io"
)

// ContextReader makes reads from r return ctx.Err() once ctx is done, even when
// r itself blocks. A read that is already in flight when ctx ends keeps running
// in the background and its result is dropped, so r must not be used afterwards.
type ContextReader struct {
	ctx     context.Context
	r       io.Reader
	pending chan readResult
}

type readResult struct {
	buf []byte
	err error
}

// NewContextReader wraps r.
func NewContextReader(ctx context.Context, r io.Reader) *ContextReader {
	return &ContextReader{ctx: ctx, r: r}
}

// Read implements io.Reader.
func (c *ContextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}

	// The background read owns its buffer; p is only touched here.
	ch := make(chan readResult, 1)
	buf := make([]byte, len(p))
	go func() {
		n, err := c.r.Read(buf)
		ch <- readResult{buf: buf[:n], err: err}
	}()

	select {
	case res := <-ch:
		return copy(p, res.buf), res.err
	case <-c.ctx.Done():
		return 0, c.ctx.Err()
	}
}
