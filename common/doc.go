// Package common provides core data structures and utilities shared across
// the IPROTO client. It defines the wire-level protocol elements, the tuple
// value model, configuration structures, and the error taxonomy used by the
// other packages.
//
// The package focuses on:
//   - IPROTO packet framing (fixed 12-byte header, little-endian fields)
//   - Stream reassembly of inbound byte chunks into whole packets
//   - Tuple/field value model with typed constructors and accessors
//   - Request and Result structures exchanged with the codec
//   - Configuration structures for connections and transports
//   - Custom logging implementation on the Dragonboat logger API
//
// Key Components:
//
//   - Extract: Pure framing function that cuts complete packets off the
//     front of an accumulated byte buffer and returns the unconsumed
//     remainder. Tolerates headers and bodies split across arbitrary chunk
//     boundaries as well as many packets arriving in one chunk.
//
//   - Request: Logical description of one client operation (ping, select,
//     insert, replace, delete, call) together with its per-operation
//     options, created through factory functions and validated before
//     encoding.
//
//   - Result: Decoded success payload of a response, either a sequence of
//     tuples or an affected-row count.
//
//   - Tuple / Field: Ordered record of opaque byte fields with helpers for
//     the fixed-width integer encodings numeric indexes expect.
//
//   - ClientConfig: Connection configuration including the delivery mode
//     (sync, async, discard), timeouts, and socket tuning options.
//
//   - Error taxonomy: ValidationError (local), ProtocolError (fatal to the
//     connection), ServerError (per-request), and ErrClosed.
package common
