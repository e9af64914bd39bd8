package base

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wkhere/tarantool/common"
)

func dialLoopback(t *testing.T) net.Conn {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			// Hold the peer open until the listener is torn down.
			buf := make([]byte, 1)
			_, _ = conn.Read(buf)
		}
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestUpgradeTCPAppliesSettings(t *testing.T) {
	conn := dialLoopback(t)

	conf := common.ClientTransportConfig{
		SocketConf: common.SocketConf{
			WriteBufferSize: 64 * 1024,
			ReadBufferSize:  64 * 1024,
		},
		TCPConf: common.TCPConf{
			TCPNoDelay:      true,
			TCPKeepAliveSec: 30,
			TCPLingerSec:    1,
		},
	}
	require.NoError(t, UpgradeTCP(conn, conf))
}

func TestUpgradeTCPZeroConfIsNoop(t *testing.T) {
	conn := dialLoopback(t)
	require.NoError(t, UpgradeTCP(conn, common.ClientTransportConfig{}))
}

// Connection types without socket tuning are passed through untouched.
func TestUpgradeSocketNonSocketConn(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	conf := common.ClientTransportConfig{
		SocketConf: common.SocketConf{WriteBufferSize: 1024, ReadBufferSize: 1024},
	}
	require.NoError(t, UpgradeSocket(client, conf))
	require.NoError(t, UpgradeTCP(client, conf))
}
