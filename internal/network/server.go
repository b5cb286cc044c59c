package network

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// contextKey is a type alias for context keys passed to server handlers.
type contextKey int

const (
	// ListenAddrContextKey is the name of the context key holding the net.Addr on which the
	// server that invoked the handler is listening.
	ListenAddrContextKey contextKey = iota
)

// ServerHandler is a common interface that wraps logic for handling incoming datagrams.
type ServerHandler interface {
	// Handle describes the routine to run for each datagram. The passed conn is a UDPConn whose
	// first Read returns the datagram.
	Handle(ctx context.Context, conn net.Conn) error

	// ConsumeError is a callback invoked when the handler returns an error.
	ConsumeError(ctx context.Context, err error)
}

// UDPServer describes a server that listens on a UDP address.
type UDPServer struct {
	addr string
	opts UDPServerOpts

	conn  net.PacketConn
	mutex sync.Mutex
}

// UDPServerOpts formalizes UDP server configuration options.
type UDPServerOpts struct {
	// MaxConcurrentConnections configures the number of workers concurrently reading datagrams
	// from the shared socket.
	MaxConcurrentConnections int
	// ReadTimeout is the maximum amount of time a worker waits for a datagram before looping.
	// Since UDP is a connectionless protocol, this is the time between when the worker begins
	// listening and when a peer sends data.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum amount of time a handler is allowed to take to reply to a peer.
	WriteTimeout time.Duration
}

// NewUDPServer creates a UDP server listening on the specified address.
func NewUDPServer(addr string, opts UDPServerOpts) *UDPServer {
	// Sane option defaults
	if opts.MaxConcurrentConnections <= 0 {
		opts.MaxConcurrentConnections = 4
	}

	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = time.Second
	}

	return &UDPServer{addr: addr, opts: opts}
}

// Listen binds the server's UDP socket.
func (s *UDPServer) Listen() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.conn != nil {
		return nil
	}

	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "server: failed to listen on UDP socket: addr=%s", s.addr)
	}

	s.conn = conn

	return nil
}

// Addr returns the bound local address, or nil before Listen.
func (s *UDPServer) Addr() net.Addr {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.conn == nil {
		return nil
	}

	return s.conn.LocalAddr()
}

// ListenAndServe binds the socket and serves datagrams until the context is cancelled.
func (s *UDPServer) ListenAndServe(ctx context.Context, handler ServerHandler) error {
	if err := s.Listen(); err != nil {
		return err
	}

	return s.Serve(ctx, handler)
}

// Serve dispatches datagrams read from the bound socket to the handler until the context is
// cancelled, after which the socket is closed and all workers have exited.
func (s *UDPServer) Serve(ctx context.Context, handler ServerHandler) error {
	s.mutex.Lock()
	conn := s.conn
	s.mutex.Unlock()

	if conn == nil {
		return errors.New("server: serve called before listen")
	}

	ctx = context.WithValue(ctx, ListenAddrContextKey, conn.LocalAddr())

	var wg sync.WaitGroup
	for i := 0; i < s.opts.MaxConcurrentConnections; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for ctx.Err() == nil {
				udpConn := NewUDPConn(conn, s.opts.ReadTimeout, s.opts.WriteTimeout)

				err := handler.Handle(ctx, udpConn)
				switch {
				case err == nil:
				case errors.Is(err, net.ErrClosed):
					return
				case isTimeout(err):
					// No datagram arrived within the read timeout; poll the context again.
				default:
					handler.ConsumeError(ctx, err)
				}
			}
		}()
	}

	<-ctx.Done()

	s.mutex.Lock()
	err := s.conn.Close()
	s.conn = nil
	s.mutex.Unlock()

	wg.Wait()

	return err
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
