package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/streamtable/internal/output"
)

type deviceKey struct{}

func withDevice(ctx context.Context, dev *output.Device) context.Context {
	return context.WithValue(ctx, deviceKey{}, dev)
}

// deviceFor returns the device installed by the root command, or a new one
// over the command's streams when the command runs on its own.
func deviceFor(cmd *cobra.Command) *output.Device {
	if dev, ok := cmd.Context().Value(deviceKey{}).(*output.Device); ok {
		return dev
	}
	return output.NewDevice(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
