package transport

import (
	"net"

	"github.com/wkhere/tarantool/common"
)

// IConnector defines the interface for transport-specific connection
// operations. The connection engine owns the returned net.Conn
// exclusively; connectors only establish and tune it.
type IConnector interface {
	// Connect establishes a single connection to the given endpoint
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}
