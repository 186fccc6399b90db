// SPDX-License-Identifier: GPL-3.0-or-later

package arrowhead

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/bassosimone/netstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubbedTransport(t *testing.T, dialErr error) (*TCPTransport, *netstub.FuncConn) {
	t.Helper()
	conn := newMinimalConn()
	conn.CloseFunc = func() error { return nil }
	conn.ReadFunc = func(b []byte) (int, error) {
		return copy(b, []byte("OK\n")), nil
	}
	conn.WriteFunc = func(b []byte) (int, error) {
		return len(b), nil
	}

	cfg := NewConfig()
	cfg.Dialer = &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			if dialErr != nil {
				return nil, dialErr
			}
			return conn, nil
		},
	}

	endpoint := netip.MustParseAddrPort("192.0.2.10:10001")
	transport := NewTCPTransport(cfg, endpoint, nil, DefaultSLogger())
	return transport, conn
}

func TestTCPTransportConnectReadWriteDisconnect(t *testing.T) {
	transport, _ := newStubbedTransport(t, nil)

	require.NoError(t, transport.Connect(context.Background()))
	require.NoError(t, transport.Connect(context.Background())) // idempotent

	n, err := transport.Write([]byte("LOGIN\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	buf := make([]byte, 16)
	n, err = transport.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "OK\n", string(buf[:n]))

	require.NoError(t, transport.Disconnect())
	require.NoError(t, transport.Disconnect()) // idempotent

	_, err = transport.Write([]byte("x"))
	assert.Error(t, err)
}

func TestTCPTransportConnectPropagatesDialError(t *testing.T) {
	transport, _ := newStubbedTransport(t, errors.New("refused"))
	err := transport.Connect(context.Background())
	assert.Error(t, err)
}

func TestTCPTransportReadWriteBeforeConnectFails(t *testing.T) {
	transport, _ := newStubbedTransport(t, nil)

	_, err := transport.Write([]byte("x"))
	assert.Error(t, err)

	_, err = transport.Read(make([]byte, 1))
	assert.Error(t, err)
}
