package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/streamtable/internal/cli"
	"github.com/rshade/streamtable/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		if root == nil {
			t.Fatal("expected root command to be non-nil")
		}
		assert.Equal(t, "streamtable", root.Use)
	})
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantExitCode int
	}{
		{
			name:         "nil error returns 0",
			err:          nil,
			wantExitCode: 0,
		},
		{
			name:         "generic error",
			err:          errors.New("boom"),
			wantExitCode: cli.ExitFailure,
		},
		{
			name:         "usage error",
			err:          &cli.ExitError{Code: cli.ExitUsage, Err: errors.New("bad flag")},
			wantExitCode: cli.ExitUsage,
		},
		{
			name:         "wrapped exit error",
			err:          fmt.Errorf("outer: %w", &cli.ExitError{Code: 3, Err: errors.New("inner")}),
			wantExitCode: 3,
		},
		{
			name:         "interrupted",
			err:          context.Canceled,
			wantExitCode: cli.ExitInterrupted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExitCode, extractExitCode(tt.err))
		})
	}
}
