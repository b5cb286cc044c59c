package network

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// UDPConn is a single-datagram view of the packet socket shared by UDPServer's workers. Each
// worker builds a fresh UDPConn per datagram and hands it to the ServerHandler: the first Read
// receives one datagram and pins its sender as the remote peer, and any Write replies to that peer
// only. A UDPConn never owns the socket; the server closes it once every worker has returned.
type UDPConn struct {
	conn         net.PacketConn
	readTimeout  time.Duration
	writeTimeout time.Duration
	remote       net.Addr
}

// DatagramConn is an abstraction over a connected datagram net.Conn that applies a write deadline
// before every write, so that a write can never stall its caller.
type DatagramConn struct {
	writeTimeout time.Duration

	net.Conn
}

// NewUDPConn creates a UDPConn from a backing net.PacketConn.
func NewUDPConn(conn net.PacketConn, readTimeout time.Duration, writeTimeout time.Duration) *UDPConn {
	return &UDPConn{
		conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Read receives one datagram, waiting at most the read timeout. A UDPConn serves exactly one
// datagram, so a second Read is an error.
func (c *UDPConn) Read(buf []byte) (n int, err error) {
	if c.remote != nil {
		return 0, errors.Errorf("conn: datagram already read: remote=%s", c.remote)
	}

	if c.readTimeout > 0 {
		if err := c.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}

	n, c.remote, err = c.conn.ReadFrom(buf)

	return
}

// Write replies to the peer pinned by Read, bounded by the write timeout.
func (c *UDPConn) Write(buf []byte) (n int, err error) {
	if c.remote == nil {
		return 0, errors.New("conn: no datagram read; no peer to reply to")
	}

	if c.writeTimeout > 0 {
		if err := c.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return c.conn.WriteTo(buf, c.remote)
}

// Close is a noop. The shared socket is closed by UDPServer.Serve.
func (c *UDPConn) Close() error {
	return nil
}

// LocalAddr obtains the connection's local address.
func (c *UDPConn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the sender of the datagram, or nil before Read.
func (c *UDPConn) RemoteAddr() net.Addr {
	return c.remote
}

// SetDeadline sets both the read and write deadline.
func (c *UDPConn) SetDeadline(t time.Time) error {
	return c.conn.SetDeadline(t)
}

// SetReadDeadline sets the read deadline.
func (c *UDPConn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

// SetWriteDeadline sets the write deadline.
func (c *UDPConn) SetWriteDeadline(t time.Time) error {
	return c.conn.SetWriteDeadline(t)
}

// NewDatagramConn creates a DatagramConn from a backing net.Conn.
func NewDatagramConn(conn net.Conn, writeTimeout time.Duration) *DatagramConn {
	return &DatagramConn{
		Conn:         conn,
		writeTimeout: writeTimeout,
	}
}

// Write sets a write deadline followed by writing a single datagram to the backing connection.
func (c *DatagramConn) Write(buf []byte) (n int, err error) {
	if c.writeTimeout > 0 {
		if err := c.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return c.Conn.Write(buf)
}
