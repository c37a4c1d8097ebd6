package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"platen/internal/encoding"
	"platen/internal/escpos"
	"platen/internal/logging"
	"platen/internal/profile"
	"platen/internal/transport"
)

type printFlags struct {
	profileName string
	profileFile string
	initial     string
	pin         bool
	fallback    string
	device      string
	address     string
	toStdout    bool
	file        string
	sendInit    bool
	feed        int
	cut         bool
	spoolJob    bool
}

func newPrintCommand(ctx *commandContext) *cobra.Command {
	var flags printFlags

	cmd := &cobra.Command{
		Use:   "print [text...]",
		Short: "Print text, switching code pages as the script demands",
		Long: `Print text on an ESC/POS printer. Text comes from the arguments,
from --file, or from stdin when neither is given. Characters outside
ASCII are encoded by switching the printer's active code page; switch
commands are only emitted when a character forces a change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, flags.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if text == "" {
				return fmt.Errorf("nothing to print")
			}
			return runPrint(cmd.Context(), ctx, flags, text, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&flags.profileName, "profile", "p", "", "Built-in printer profile to use")
	cmd.Flags().StringVar(&flags.profileFile, "profile-file", "", "Custom printer profile file (TOML)")
	cmd.Flags().StringVar(&flags.initial, "initial", "", "Code page the printer already has active")
	cmd.Flags().BoolVar(&flags.pin, "pin", false, "Disable automatic selection and encode everything in the initial code page")
	cmd.Flags().StringVar(&flags.fallback, "fallback", "", "Substitute character for unencodable input")
	cmd.Flags().StringVarP(&flags.device, "device", "d", "", "Printer device node, e.g. /dev/usb/lp0")
	cmd.Flags().StringVarP(&flags.address, "address", "a", "", "Networked printer address (host:port)")
	cmd.Flags().BoolVar(&flags.toStdout, "stdout", false, "Write raw printer bytes to stdout instead of a device")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read the text to print from a file")
	cmd.Flags().BoolVar(&flags.sendInit, "init", false, "Send the printer initialize command first")
	cmd.Flags().IntVar(&flags.feed, "feed", 0, "Feed this many lines after the text")
	cmd.Flags().BoolVar(&flags.cut, "cut", false, "Cut the paper after printing")
	cmd.Flags().BoolVar(&flags.spoolJob, "spool", false, "Enqueue the job in the spool instead of printing now")

	return cmd
}

func readText(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runPrint(cmdCtx context.Context, ctx *commandContext, flags printFlags, text string, out io.Writer) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	if flags.spoolJob {
		store, err := ctx.openSpool()
		if err != nil {
			return fmt.Errorf("open spool: %w", err)
		}
		defer store.Close()

		profileName := flags.profileName
		if profileName == "" {
			profileName = cfg.Printer.Profile
		}
		job, err := store.Add(cmdCtx, profileName, text)
		if err != nil {
			return fmt.Errorf("enqueue job: %w", err)
		}
		fmt.Fprintf(out, "Spooled job %d (%s)\n", job.ID, job.UUID)
		return nil
	}

	prof, err := ctx.resolveProfile(flags.profileName, flags.profileFile)
	if err != nil {
		return err
	}

	opts, err := sessionOptions(ctx, flags)
	if err != nil {
		return err
	}

	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	sink, target, err := openSink(cmdCtx, ctx, flags.device, flags.address, flags.toStdout)
	if err != nil {
		return err
	}
	defer sink.Close()

	counted := &countingWriter{w: sink}
	if err := renderJob(counted, prof, opts, text, flags.sendInit, flags.feed, flags.cut); err != nil {
		return err
	}

	logging.WithComponent(logger, "print").Info("job sent",
		logging.Args(
			logging.String(logging.FieldDevice, target),
			logging.String(logging.FieldProfile, prof.Name()),
			logging.Int64("bytes", counted.n),
		)...)
	return nil
}

// sessionOptions merges flag overrides over configured encoding
// behavior. A configured pinned page applies unless flags take over.
func sessionOptions(ctx *commandContext, flags printFlags) (encoding.Options, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return encoding.Options{}, err
	}

	opts := encoding.Options{
		Initial:  flags.initial,
		Pin:      flags.pin,
		Fallback: cfg.FallbackRune(),
	}
	if opts.Initial == "" {
		opts.Initial = cfg.Encoding.Initial
	}
	if !flags.pin && flags.initial == "" && cfg.Encoding.Pinned != "" {
		opts.Initial = cfg.Encoding.Pinned
		opts.Pin = true
	}
	if flags.fallback != "" {
		if utf8.RuneCountInString(flags.fallback) != 1 {
			return encoding.Options{}, fmt.Errorf("--fallback must be exactly one character, got %q", flags.fallback)
		}
		for _, r := range flags.fallback {
			opts.Fallback = r
		}
	}
	return opts, nil
}

// openSink resolves the output target. Flags win over configuration; a
// configured network address wins over the default device node.
func openSink(cmdCtx context.Context, ctx *commandContext, deviceFlag, addressFlag string, toStdout bool) (transport.Sink, string, error) {
	if toStdout {
		return transport.NopCloser(os.Stdout), "stdout", nil
	}
	if addressFlag != "" {
		sink, err := transport.DialNetwork(cmdCtx, addressFlag)
		return sink, addressFlag, err
	}
	if deviceFlag != "" {
		sink, err := transport.OpenDevice(deviceFlag)
		return sink, deviceFlag, err
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg.Printer.Address != "" {
		sink, err := transport.DialNetwork(cmdCtx, cfg.Printer.Address)
		return sink, cfg.Printer.Address, err
	}
	sink, err := transport.OpenDevice(cfg.Printer.Device)
	return sink, cfg.Printer.Device, err
}

// renderJob writes one complete job to the sink: optional initialize,
// the encoded text, optional trailing feed and cut.
func renderJob(sink io.Writer, prof *profile.Profile, opts encoding.Options, text string, sendInit bool, feed int, cut bool) error {
	if sendInit {
		if _, err := sink.Write(escpos.Initialize); err != nil {
			return fmt.Errorf("write initialize: %w", err)
		}
	}

	session, err := encoding.NewSession(sink, prof, opts)
	if err != nil {
		return err
	}
	if err := session.Write(text); err != nil {
		return err
	}

	if feed > 0 {
		if feed > 255 {
			feed = 255
		}
		if _, err := sink.Write(escpos.Feed(byte(feed))); err != nil {
			return fmt.Errorf("write feed: %w", err)
		}
	}
	if cut {
		if _, err := sink.Write(escpos.Cut(false)); err != nil {
			return fmt.Errorf("write cut: %w", err)
		}
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
