// Package client implements the IPROTO connection engine. A Connection
// owns one duplex byte stream, multiplexes many logically independent
// callers onto it, and routes each response back to the request that
// caused it.
//
// The package focuses on:
//   - The operation template shared by all requests: validate, encode,
//     allocate a strictly increasing request id, register a pending
//     entry, write header||body atomically
//   - A single reader goroutine per connection that reassembles the
//     inbound byte stream into whole packets and dispatches them by
//     request id, never by arrival order
//   - Three delivery modes fixed at connect time: sync (the caller
//     suspends until its response is dispatched), async (the caller gets
//     the request id at once and the result later arrives on the
//     notification channel), and discard (the result is dropped but the
//     pending entry is still freed)
//   - Teardown that resolves every outstanding waiter with a
//     connection-closed failure, whether close was requested or forced
//     by a transport or protocol failure
//
// Lifecycle:
//
//	A connection moves through connecting -> open -> closed. The closed
//	state is terminal; nothing is retried or reconnected here. Requests
//	are written in invocation order; responses may be dispatched in any
//	order. Protocol-integrity violations (unsolicited response ids,
//	response-type mismatches, undecodable bytes) terminate the
//	connection rather than being skipped, since the framing can no
//	longer be trusted.
//
// Usage:
//
//	conn, err := client.Connect(common.ClientConfig{
//		Transport: common.ClientTransportConfig{Endpoint: "localhost:33013"},
//	}, tcp.NewTCPConnector(), codec.NewBoxCodec())
//	if err != nil { ... }
//	defer conn.Close()
//
//	resp, err := conn.Insert(0, common.MustTuple(uint32(1), "name"),
//		&common.MutateOptions{ReturnTuple: true})
//
// Thread Safety:
//
//	All public methods are safe for concurrent use. Waiting synchronous
//	callers never block the reader, so unrelated requests keep being
//	served while one caller waits.
package client
