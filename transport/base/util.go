package base

import (
	"net"
	"time"

	"github.com/wkhere/tarantool/common"
)

// bufferedConn is the subset of socket types that expose buffer tuning
// (both *net.TCPConn and *net.UnixConn satisfy it).
type bufferedConn interface {
	SetWriteBuffer(bytes int) error
	SetReadBuffer(bytes int) error
}

// UpgradeSocket applies the socket buffer settings shared by all stream
// transports.
func UpgradeSocket(conn net.Conn, conf common.ClientTransportConfig) error {
	sock, ok := conn.(bufferedConn)
	if !ok {
		return nil // Nothing to tune on this connection type
	}

	if conf.WriteBufferSize > 0 {
		if err := sock.SetWriteBuffer(conf.WriteBufferSize); err != nil {
			return err
		}
	}

	if conf.ReadBufferSize > 0 {
		if err := sock.SetReadBuffer(conf.ReadBufferSize); err != nil {
			return err
		}
	}

	return nil
}

// UpgradeTCP applies TCP-specific settings on top of UpgradeSocket.
func UpgradeTCP(conn net.Conn, conf common.ClientTransportConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil // Not a TCP connection, nothing to upgrade
	}

	// Disable Nagle's algorithm if configured
	if err := tcpConn.SetNoDelay(conf.TCPNoDelay); err != nil {
		return err
	}

	if err := UpgradeSocket(conn, conf); err != nil {
		return err
	}

	// Enable TCP keep-alive if configured
	if conf.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}

		keepAlivePeriod := time.Duration(conf.TCPKeepAliveSec) * time.Second
		if err := tcpConn.SetKeepAlivePeriod(keepAlivePeriod); err != nil {
			return err
		}
	}

	// Set TCP linger option if configured
	if conf.TCPLingerSec > 0 {
		if err := tcpConn.SetLinger(conf.TCPLingerSec); err != nil {
			return err
		}
	}

	return nil
}
