package metrics

import (
	"net"
	"sync"
	"testing"

	"statsdemit/internal/protocol"
)

// recordingDialer is a network.Dialer double recording every socket operation.
type recordingDialer struct {
	mutex     sync.Mutex
	dials     []string
	datagrams []string
	closes    int
	dialErr   error
	writeErr  error
}

type recordingConn struct {
	net.Conn
	dialer *recordingDialer
}

func (d *recordingDialer) Dial(addr string) (net.Conn, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.dials = append(d.dials, addr)
	if d.dialErr != nil {
		return nil, d.dialErr
	}

	return &recordingConn{dialer: d}, nil
}

func (c *recordingConn) Write(buf []byte) (int, error) {
	c.dialer.mutex.Lock()
	defer c.dialer.mutex.Unlock()

	c.dialer.datagrams = append(c.dialer.datagrams, string(buf))
	if c.dialer.writeErr != nil {
		return 0, c.dialer.writeErr
	}

	return len(buf), nil
}

func (c *recordingConn) Close() error {
	c.dialer.mutex.Lock()
	defer c.dialer.mutex.Unlock()

	c.dialer.closes++
	return nil
}

// sequenceSampler returns canned draws in order.
type sequenceSampler struct {
	mutex sync.Mutex
	draws []float64
}

func (s *sequenceSampler) Float64() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	draw := s.draws[0]
	s.draws = s.draws[1:]
	return draw
}

// recordingSender is a Sender double recording every batch.
type recordingSender struct {
	batches [][]protocol.Entry
	opts    [][]Option
}

func (s *recordingSender) Send(entries []protocol.Entry, opts ...Option) error {
	s.batches = append(s.batches, entries)
	s.opts = append(s.opts, opts)
	return nil
}

func enabledConfig() TransportConfig {
	return TransportConfig{
		Enabled:           true,
		Host:              "127.0.0.1",
		Port:              8125,
		Prefix:            "myapp",
		DefaultSampleRate: 1,
	}
}

func staticProvider(cfg TransportConfig) ConfigProvider {
	return ConfigProviderFunc(func() TransportConfig { return cfg })
}

// startServer binds a loopback UDP socket and forwards every datagram it reads to a channel.
func startServer(t *testing.T) (*net.UDPConn, chan []byte) {
	inSocket, err := net.ListenUDP("udp4", &net.UDPAddr{
		IP: net.IPv4(127, 0, 0, 1),
	})
	if err != nil {
		t.Fatal(err)
	}

	received := make(chan []byte, 1024)

	go func() {
		for {
			buf := make([]byte, 1500)

			n, err := inSocket.Read(buf)
			if err != nil {
				return
			}

			received <- buf[0:n]
		}
	}()

	return inSocket, received
}
