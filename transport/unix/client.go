package unix

import (
	"net"

	"github.com/wkhere/tarantool/common"
	"github.com/wkhere/tarantool/transport"
	"github.com/wkhere/tarantool/transport/base"
)

// clientConnector implements the IConnector interface for Unix sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("unix", endpoint)
}

func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	return base.UpgradeSocket(conn, config.Transport)
}

// --------------------------------------------------------------------------
// Connector Factory Method
// --------------------------------------------------------------------------

// NewUnixConnector creates a new Unix socket connector
func NewUnixConnector() transport.IConnector {
	return &clientConnector{}
}
