// Package codec provides request/response body encoding for the IPROTO
// client. It defines a common interface and the box-protocol binary
// implementation used to talk to the server.
//
// The package focuses on:
//   - Translating logical requests into wire bodies and back
//   - Keeping all byte-level protocol knowledge out of the connection
//     engine, which only handles framing and routing
//   - Distinguishing per-request server errors from undecodable bytes
//
// Key Components:
//
//   - ICodec: Core interface every codec implementation must satisfy.
//     Codecs are pure functions over bytes; they never touch the socket.
//
//   - boxCodecImpl: The box protocol (IPROTO 1.5) implementation.
//     Integers are little-endian; request tuples are a uint32 cardinality
//     followed by BER-varint length-prefixed fields; response tuples add
//     a leading byte-size word. Insert and replace share one request type
//     and are told apart by the BOX_ADD / BOX_REPLACE flags; delete has
//     its own request type.
//
// Error Semantics:
//
//	A response whose return code is nonzero decodes into a
//	*common.ServerError carrying the code and the server's reason text.
//	This is a per-request failure. Any other decode error means the byte
//	stream cannot be trusted and the connection must be torn down.
//
// Thread Safety:
//
//	Codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package codec
