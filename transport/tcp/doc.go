// Package tcp implements the TCP connector for the IPROTO client. It
// provides a concrete transport.IConnector that dials host:port
// endpoints and applies the configured TCP options (TCP_NODELAY,
// keep-alive, linger) and socket buffer sizes on the established
// connection. See the base package for the shared upgrade logic.
package tcp
