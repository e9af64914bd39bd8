package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Delivery mode
// --------------------------------------------------------------------------

// Mode is the delivery discipline of a connection, fixed at connect time.
type Mode string

const (
	// ModeSync suspends the calling operation until its response is
	// dispatched and returns the decoded result directly.
	ModeSync Mode = "sync"
	// ModeAsync returns the allocated request id immediately; the result
	// is later delivered on the connection's notification channel.
	ModeAsync Mode = "async"
	// ModeDiscard returns the allocated request id immediately and drops
	// the result when it arrives.
	ModeDiscard Mode = "discard"
)

// Valid reports whether m is a recognized delivery mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeSync, ModeAsync, ModeDiscard:
		return true
	}
	return false
}

// --------------------------------------------------------------------------
// Client configuration structs
// --------------------------------------------------------------------------

// SocketConf holds socket buffer settings shared by all stream transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP-specific socket settings.
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// ClientTransportConfig holds the transport settings of a connection.
type ClientTransportConfig struct {
	// Endpoint is the server address, host:port for tcp or a socket
	// path for unix.
	Endpoint string

	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters for one connection.
type ClientConfig struct {
	// Mode selects the delivery discipline; empty means ModeSync.
	Mode Mode

	// TimeoutSecond bounds synchronous calls. Zero means no timeout.
	// A fired timeout is advisory only: the request stays pending and a
	// late response is still dispatched and discarded.
	TimeoutSecond int

	// NotifyBuffer is the capacity of the async notification channel.
	// Zero means DefaultNotifyBuffer.
	NotifyBuffer int

	Transport ClientTransportConfig

	// Logging configuration
	LogLevel string
}

// DefaultNotifyBuffer is the notification channel capacity used when the
// config does not set one.
const DefaultNotifyBuffer = 256

// DeliveryMode returns the configured mode with the default applied.
func (c *ClientConfig) DeliveryMode() Mode {
	if c.Mode == "" {
		return ModeSync
	}
	return c.Mode
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Connection")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Mode", string(c.DeliveryMode()))
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	if c.DeliveryMode() == ModeAsync {
		addField("Notify Buffer", strconv.Itoa(c.NotifyBuffer))
	}

	addSection("Socket")
	addField("Write Buffer", strconv.Itoa(c.Transport.WriteBufferSize))
	addField("Read Buffer", strconv.Itoa(c.Transport.ReadBufferSize))
	addField("TCP NoDelay", fmt.Sprintf("%t", c.Transport.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.Transport.TCPLingerSec))

	return sb.String()
}
