// Package transport delivers rendered printer bytes to their destination.
//
// A Sink is the one capability the encoding layer needs: accept bytes,
// in order. The implementations here cover the common destinations of a
// receipt printer setup: a character device node, a raw TCP socket
// (JetDirect port 9100), and an in-memory buffer for dry runs and
// tests. Sink failures propagate as-is; retry policy belongs to the
// caller.
package transport
