package protocol

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/getsentry/raven-go"

	"statsdemit/internal/log"
	"statsdemit/internal/network"
)

// maxDatagramSize is the largest UDP payload the handler will read.
const maxDatagramSize = 65535

// DatagramPrintHandler is a statsd-protocol-aware server handler that parses every received
// datagram and prints it in a normalized form. It is a debugging aid standing in for a real
// metrics daemon.
type DatagramPrintHandler struct {
	Out    io.Writer
	Logger log.Logger

	mutex sync.Mutex
}

// ConsumeError logs the handler error and reports it.
func (h *DatagramPrintHandler) ConsumeError(ctx context.Context, err error) {
	h.Logger.Error("%v", err)

	raven.CaptureError(err, map[string]string{
		"listen_addr": fmt.Sprintf("%v", ctx.Value(network.ListenAddrContextKey)),
	})
}

// Handle reads one datagram from the connection and prints each metric line it carries. Lines that
// do not parse are logged and skipped; they do not fail the datagram.
func (h *DatagramPrintHandler) Handle(ctx context.Context, conn net.Conn) error {
	buf := make([]byte, maxDatagramSize)

	n, err := conn.Read(buf)
	if err != nil {
		return err
	}

	h.Logger.Debug(
		"protocol: read datagram: bytes=%d peer=%v",
		n,
		conn.RemoteAddr(),
	)

	for _, line := range strings.Split(string(buf[:n]), "\n") {
		if line == "" {
			continue
		}

		datagram, err := ParseDatagram(line)
		if err != nil {
			h.Logger.Warn("protocol: skipping malformed line: peer=%v err=%v", conn.RemoteAddr(), err)
			continue
		}

		h.print(datagram)
	}

	return nil
}

func (h *DatagramPrintHandler) print(d Datagram) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	fmt.Fprintf(h.Out, "%-7s %s = %s (rate=%v)\n", d.Kind, d.Name, d.Value, d.SampleRate)
}
