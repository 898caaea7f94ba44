package value

import (
	"context"
	"errors"
	"io"
)

// Stream decodes values from dec and sends them to out until the input ends.
// Malformed items are passed to onError and skipped. A read failure is passed
// to onError and ends the stream without an error, so the consumer still sees
// everything decoded before it. A read interrupted by cancellation returns
// ctx.Err() without a report. Stream does not close out.
func Stream(ctx context.Context, dec Decoder, out chan<- Value, onError func(error)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		v, err := dec.Decode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if onError != nil {
				onError(err)
			}
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				continue
			}
			return nil
		}

		select {
		case out <- v:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
