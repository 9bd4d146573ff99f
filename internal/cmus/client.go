// Package cmus reads playback status from a cmus control socket.
//
// The protocol is a single newline-terminated command written to a unix
// socket, answered with newline-delimited "key value..." text until the
// peer closes the stream.
package cmus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
)

// ErrUnavailable reports that the player socket could not be reached or
// closed without a usable response.
var ErrUnavailable = errors.New("player unavailable")

const statusCommand = "status\n"

// Client issues status requests against a single socket path.
type Client struct {
	SocketPath string
}

func NewClient(socketPath string) *Client {
	return &Client{SocketPath: socketPath}
}

// Status sends one status command and parses the reply. It performs no
// retries; transport failure is surfaced to the caller.
func (c *Client) Status(ctx context.Context) (Snapshot, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.SocketPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: connect %s: %v", ErrUnavailable, c.SocketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := io.WriteString(conn, statusCommand); err != nil {
		return Snapshot{}, fmt.Errorf("%w: send command: %v", ErrUnavailable, err)
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if len(data) == 0 {
		return Snapshot{}, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	return parseStatus(bytes.NewReader(data)), nil
}
