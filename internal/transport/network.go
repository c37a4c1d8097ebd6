package transport

import (
	"context"
	"fmt"
	"net"
	"time"
)

// dialTimeout bounds how long we wait for an unreachable printer.
const dialTimeout = 10 * time.Second

// Network writes printer bytes to a raw TCP socket, the JetDirect-style
// transport most networked ESC/POS printers expose on port 9100.
type Network struct {
	address string
	conn    net.Conn
}

// DialNetwork connects to a networked printer at address (host:port).
func DialNetwork(ctx context.Context, address string) (*Network, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connect to printer %s: %w", address, err)
	}
	return &Network{address: address, conn: conn}, nil
}

// Address returns the printer address.
func (n *Network) Address() string { return n.address }

func (n *Network) Write(p []byte) (int, error) {
	return n.conn.Write(p)
}

func (n *Network) Close() error {
	return n.conn.Close()
}
