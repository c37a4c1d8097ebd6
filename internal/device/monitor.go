package device

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"platen/internal/logging"
)

// Event describes a printer device attaching or detaching.
type Event struct {
	// Action is "add" or "remove".
	Action string
	// Node is the device node path, e.g. /dev/usb/lp0.
	Node string
}

// Monitor listens for udev netlink events of the usb line-printer
// class and reports attach/detach events through a callback.
type Monitor struct {
	logger  *slog.Logger
	handler func(Event)
}

// NewMonitor creates a monitor delivering events to handler.
func NewMonitor(logger *slog.Logger, handler func(Event)) *Monitor {
	return &Monitor{
		logger:  logging.WithComponent(logger, "device-monitor"),
		handler: handler,
	}
}

// Run connects to the kernel's udev netlink socket and delivers printer
// events until ctx is cancelled. It returns when ctx ends or the
// netlink socket cannot be opened.
func (m *Monitor) Run(ctx context.Context) error {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return fmt.Errorf("connect to netlink socket (try running with more privileges): %w", err)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, printerMatcher())

	m.logger.Info("watching for printer devices")

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return ctx.Err()
		case uevent := <-queue:
			m.handleEvent(uevent)
		case err := <-errs:
			m.logger.Warn("netlink monitor error", logging.Args(logging.Error(err))...)
		}
	}
}

// printerMatcher matches add/remove events of the usb line-printer
// class (the usblp driver registers nodes under the usbmisc subsystem).
func printerMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "usbmisc",
		},
	})
	return rules
}

func (m *Monitor) handleEvent(uevent netlink.UEvent) {
	node := deviceNode(uevent)
	if node == "" || !strings.Contains(node, "lp") {
		return
	}

	event := Event{Action: string(uevent.Action), Node: node}
	m.logger.Info("printer event",
		logging.Args(
			logging.String("action", event.Action),
			logging.String(logging.FieldDevice, event.Node),
		)...)

	if m.handler != nil {
		m.handler(event)
	}
}

func deviceNode(uevent netlink.UEvent) string {
	devname := uevent.Env["DEVNAME"]
	if devname == "" {
		return ""
	}
	if !strings.HasPrefix(devname, "/") {
		devname = "/dev/" + devname
	}
	return devname
}
