package value_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamtable/internal/value"
)

func TestContextReader_PassesThrough(t *testing.T) {
	r := value.NewContextReader(context.Background(), iotest.OneByteReader(strings.NewReader("hello world")))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestContextReader_SmallBuffers(t *testing.T) {
	r := value.NewContextReader(context.Background(), strings.NewReader("abcdef"))
	got, err := io.ReadAll(iotest.OneByteReader(r))
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(got))
}

func TestContextReader_DataWithError(t *testing.T) {
	r := value.NewContextReader(context.Background(), iotest.DataErrReader(strings.NewReader("abc")))
	buf := make([]byte, 2)

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(buf[:n]))

	n, err = r.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "c", string(buf[:n]))
}

func TestContextReader_CancelUnblocks(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	r := value.NewContextReader(ctx, pr)

	done := make(chan error, 1)
	go func() {
		_, err := r.Read(make([]byte, 16))
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("read did not return after cancellation")
	}

	_, err := r.Read(make([]byte, 16))
	assert.ErrorIs(t, err, context.Canceled)
}
