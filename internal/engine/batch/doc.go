// Package batch pulls values from a lazily produced source in fixed-size windows.
//
// A Batcher is a strictly sequential consumer of one Source:
//   - it pulls at most one value at a time, in arrival order
//   - a window is exactly the configured size until the source is exhausted
//   - the final window may be shorter, including empty
//   - once exhausted it never pulls again
//
// Memory use is bounded by the window size regardless of how long the source runs.
package batch
