package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"platen/internal/encoding"
	"platen/internal/logging"
	"platen/internal/profile"
	"platen/internal/spool"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage spooled print jobs",
	}

	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsRunCommand(ctx))
	jobsCmd.AddCommand(newJobsRetryCommand(ctx))
	jobsCmd.AddCommand(newJobsRemoveCommand(ctx))
	jobsCmd.AddCommand(newJobsClearCommand(ctx))

	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List spooled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatuses(statusFlag)
			if err != nil {
				return err
			}

			store, err := ctx.openSpool()
			if err != nil {
				return fmt.Errorf("open spool: %w", err)
			}
			defer store.Close()

			jobs, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, "Spool is empty")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					strconv.FormatInt(job.ID, 10),
					job.Status,
					job.Profile,
					job.CreatedAt.Local().Format(time.DateTime),
					truncate(job.Text, 40),
					truncate(job.Error, 30),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "STATUS", "PROFILE", "CREATED", "TEXT", "ERROR"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d pending, %d printed, %d failed\n",
				stats[spool.StatusPending], stats[spool.StatusPrinted], stats[spool.StatusFailed])
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statusFlag, "status", nil, "Only show jobs with these statuses (pending, printed, failed)")
	return cmd
}

func newJobsRunCommand(ctx *commandContext) *cobra.Command {
	var device string
	var address string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Print all pending jobs in submission order",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openSpool()
			if err != nil {
				return fmt.Errorf("open spool: %w", err)
			}
			defer store.Close()

			return drainSpool(cmd.Context(), ctx, store, device, address, toStdout, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "Printer device node, e.g. /dev/usb/lp0")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Networked printer address (host:port)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write raw printer bytes to stdout instead of a device")
	return cmd
}

// drainSpool prints pending jobs oldest first over a single sink. The
// code page the device ends one job on carries into the next, so runs
// of same-script jobs cost no extra switch commands.
func drainSpool(cmdCtx context.Context, ctx *commandContext, store *spool.Store, device, address string, toStdout bool, out io.Writer) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	log := logging.WithComponent(logger, "spool-run")

	sink, target, err := openSink(cmdCtx, ctx, device, address, toStdout)
	if err != nil {
		return err
	}
	defer sink.Close()

	activePage := cfg.Encoding.Initial
	printed, failed := 0, 0

	for {
		job, err := store.NextPending(cmdCtx)
		if err != nil {
			return err
		}
		if job == nil {
			break
		}

		prof, err := jobProfile(cfg.Printer.Profile, job.Profile, ctx)
		if err == nil {
			// The carried-over page only helps if this job's profile
			// has it; jobs spooled under another profile start unknown.
			initial := activePage
			if initial != "" {
				if _, resolveErr := prof.Resolve(initial); resolveErr != nil {
					initial = ""
				}
			}
			opts := encoding.Options{Initial: initial, Fallback: cfg.FallbackRune()}
			var session *encoding.Session
			session, err = encoding.NewSession(sink, prof, opts)
			if err == nil {
				if err = session.Write(job.Text); err == nil {
					activePage = session.Current()
				}
			}
		}

		if err != nil {
			failed++
			// A failed job may have emitted switch commands before
			// erroring; the device page is unknown until the next
			// session switches again.
			activePage = ""
			log.Warn("job failed",
				logging.Args(logging.Int64(logging.FieldJobID, job.ID), logging.Error(err))...)
			if markErr := store.MarkFailed(cmdCtx, job.ID, err.Error()); markErr != nil {
				return markErr
			}
			continue
		}

		printed++
		log.Info("job printed",
			logging.Args(
				logging.Int64(logging.FieldJobID, job.ID),
				logging.String(logging.FieldDevice, target),
			)...)
		if err := store.MarkPrinted(cmdCtx, job.ID); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Printed %d job(s), %d failed\n", printed, failed)
	return nil
}

// jobProfile resolves the profile a job was spooled under. Jobs spooled
// under the currently configured profile honor a configured profile
// file; anything else must be a built-in.
func jobProfile(configured, name string, ctx *commandContext) (*profile.Profile, error) {
	if name == configured || name == "" {
		return ctx.resolveProfile("", "")
	}
	prof, ok := profile.Builtin(name)
	if !ok {
		return nil, fmt.Errorf("job profile %q is not a built-in profile", name)
	}
	return prof, nil
}

func newJobsRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>...",
		Short: "Move failed jobs back to pending",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseJobIDs(args)
			if err != nil {
				return err
			}
			store, err := ctx.openSpool()
			if err != nil {
				return fmt.Errorf("open spool: %w", err)
			}
			defer store.Close()

			for _, id := range ids {
				if err := store.Retry(cmd.Context(), id); err != nil {
					return fmt.Errorf("retry job %d: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Job %d queued for retry\n", id)
			}
			return nil
		},
	}
}

func newJobsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Delete jobs from the spool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseJobIDs(args)
			if err != nil {
				return err
			}
			store, err := ctx.openSpool()
			if err != nil {
				return fmt.Errorf("open spool: %w", err)
			}
			defer store.Close()

			for _, id := range ids {
				if err := store.Remove(cmd.Context(), id); err != nil {
					return fmt.Errorf("remove job %d: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Job %d removed\n", id)
			}
			return nil
		},
	}
}

func newJobsClearCommand(ctx *commandContext) *cobra.Command {
	var statusFlag []string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all jobs, or all jobs with the given statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseStatuses(statusFlag)
			if err != nil {
				return err
			}
			store, err := ctx.openSpool()
			if err != nil {
				return fmt.Errorf("open spool: %w", err)
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statusFlag, "status", nil, "Only clear jobs with these statuses (pending, printed, failed)")
	return cmd
}

func parseStatuses(values []string) ([]string, error) {
	statuses := make([]string, 0, len(values))
	for _, value := range values {
		status := strings.ToLower(strings.TrimSpace(value))
		switch status {
		case spool.StatusPending, spool.StatusPrinted, spool.StatusFailed:
			statuses = append(statuses, status)
		case "":
		default:
			return nil, fmt.Errorf("unknown status %q (valid: %s)", value, strings.Join(spool.Statuses, ", "))
		}
	}
	return statuses, nil
}

func parseJobIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid job id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
