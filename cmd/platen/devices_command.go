package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"platen/internal/device"
)

func newDevicesCommand(ctx *commandContext) *cobra.Command {
	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "Discover USB printers",
	}

	devicesCmd.AddCommand(newDevicesWatchCommand(ctx))

	return devicesCmd
}

func newDevicesWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch for printers being plugged in or removed",
		Long: `Watch udev events for USB line printer devices and report the
device node each printer attaches at. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			out := cmd.OutOrStdout()
			monitor := device.NewMonitor(logger, func(event device.Event) {
				switch event.Action {
				case "add":
					fmt.Fprintf(out, "Printer attached at %s\n", event.Node)
				case "remove":
					fmt.Fprintf(out, "Printer at %s removed\n", event.Node)
				}
			})

			if err := monitor.Run(signalCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
