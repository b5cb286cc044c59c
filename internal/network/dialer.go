package network

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds name resolution and each write on a dialed datagram socket.
const DefaultTimeout = 100 * time.Millisecond

// Dialer opens a connectionless socket towards a remote address.
type Dialer interface {
	// Dial opens a socket to addr. The returned connection is owned by the caller, who must
	// close it.
	Dial(addr string) (net.Conn, error)
}

// UDPDialer dials UDP sockets whose setup and writes are bounded by a timeout.
type UDPDialer struct {
	// Timeout bounds address resolution during dial and every subsequent write.
	Timeout time.Duration
}

// NewUDPDialer creates a UDPDialer. A non-positive timeout selects DefaultTimeout.
func NewUDPDialer(timeout time.Duration) *UDPDialer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &UDPDialer{Timeout: timeout}
}

// Dial opens a UDP socket to addr. UDP dialing performs no handshake, so this returns as soon as
// the address is resolved and the local socket is bound.
func (d *UDPDialer) Dial(addr string) (net.Conn, error) {
	conn, err := net.DialTimeout("udp", addr, d.Timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "dialer: failed to dial: addr=%s", addr)
	}

	return NewDatagramConn(conn, d.Timeout), nil
}
