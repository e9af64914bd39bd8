// Package transport defines the connector abstraction of the IPROTO
// client. A connector establishes and tunes one duplex byte stream; the
// connection engine in the client package owns the stream exclusively
// afterwards, reading inbound byte chunks and writing whole packets.
//
// The package focuses on:
//   - A minimal interface for transport-specific connection setup
//   - Keeping socket concerns (dialing, buffer sizing, TCP options) out
//     of the protocol engine
//   - Enabling multiple stream transports (TCP, Unix sockets)
//
// Key Components:
//
//   - IConnector: Interface for connector implementations. Connect dials
//     the endpoint, UpgradeConnection applies the configured socket
//     options, GetName identifies the transport in logs and config.
package transport
