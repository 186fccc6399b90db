// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/netip"
	"sync"
)

// Transport is the byte-stream abstraction [Session] drives: connect,
// disconnect, write outbound bytes, read inbound bytes. It is
// deliberately narrower than [net.Conn] so a test can substitute a
// transport with no real socket underneath.
type Transport interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Write(data []byte) (int, error)
	Read(buf []byte) (int, error)
}

// TCPTransport is the default [Transport], assembled from the same
// dial/observe/cancel-watch/TLS pipeline stages NewConnectFunc,
// NewObserveConnFunc, NewCancelWatchFunc, and NewTLSHandshakeFunc build
// for any [Func]-based connection establishment. TLS is included in the
// pipeline only when constructed with a non-nil [*tls.Config]; the panel
// protocol itself is always plain TCP, but a caller fronting the panel
// with a TLS-terminating proxy can still use this transport.
type TCPTransport struct {
	mu        sync.Mutex
	cfg       *Config
	endpoint  netip.AddrPort
	tlsConfig *tls.Config
	logger    SLogger
	conn      net.Conn
}

// NewTCPTransport returns a [*TCPTransport] targeting endpoint. tlsConfig
// may be nil, in which case the pipeline omits the TLS stage entirely.
func NewTCPTransport(cfg *Config, endpoint netip.AddrPort, tlsConfig *tls.Config, logger SLogger) *TCPTransport {
	return &TCPTransport{
		cfg:       cfg,
		endpoint:  endpoint,
		tlsConfig: tlsConfig,
		logger:    logger,
	}
}

// Connect implements [Transport]. It is idempotent: a call while already
// connected returns nil without redialing.
func (t *TCPTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.ConnectionTimeout)
	defer cancel()
	conn, err := t.buildPipeline().Call(ctx, Unit{})
	if err != nil {
		return err
	}
	t.conn = conn
	return nil
}

func (t *TCPTransport) buildPipeline() Func[Unit, net.Conn] {
	endpoint := NewEndpointFunc(t.endpoint)
	connect := NewConnectFunc(t.cfg, "tcp", t.logger)
	observe := NewObserveConnFunc(t.cfg, t.logger)
	cancelWatch := NewCancelWatchFunc()

	if t.tlsConfig == nil {
		return Compose4[Unit, netip.AddrPort, net.Conn, net.Conn, net.Conn](
			endpoint, connect, observe, cancelWatch)
	}

	handshake := NewTLSHandshakeFunc(t.cfg, t.tlsConfig, t.logger)
	downcast := FuncAdapter[TLSConn, net.Conn](func(_ context.Context, conn TLSConn) (net.Conn, error) {
		return conn, nil
	})
	tlsStage := Compose2[net.Conn, TLSConn, net.Conn](handshake, downcast)

	return Compose5[Unit, netip.AddrPort, net.Conn, net.Conn, net.Conn, net.Conn](
		endpoint, connect, observe, cancelWatch, tlsStage)
}

// Disconnect implements [Transport]. It is idempotent.
func (t *TCPTransport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// Write implements [Transport].
func (t *TCPTransport) Write(data []byte) (int, error) {
	conn := t.currentConn()
	if conn == nil {
		return 0, NewConnectionError("write on disconnected transport", nil)
	}
	return conn.Write(data)
}

// Read implements [Transport]. End of stream and reads on a closed
// connection are reported as a [ConnectionError].
func (t *TCPTransport) Read(buf []byte) (int, error) {
	conn := t.currentConn()
	if conn == nil {
		return 0, NewConnectionError("read on disconnected transport", nil)
	}
	n, err := conn.Read(buf)
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return n, NewConnectionError("panel connection closed", err)
	}
	return n, err
}

func (t *TCPTransport) currentConn() net.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}
