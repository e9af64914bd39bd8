package tcp

import (
	"net"

	"github.com/wkhere/tarantool/common"
	"github.com/wkhere/tarantool/transport"
	"github.com/wkhere/tarantool/transport/base"
)

// clientConnector implements the IConnector interface for TCP sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("tcp", endpoint)
}

func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	return base.UpgradeTCP(conn, config.Transport)
}

// --------------------------------------------------------------------------
// Connector Factory Method
// --------------------------------------------------------------------------

// NewTCPConnector creates a new TCP connector
func NewTCPConnector() transport.IConnector {
	return &clientConnector{}
}
