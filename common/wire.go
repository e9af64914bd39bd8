package common

import (
	"encoding/binary"
	"fmt"
)

// --------------------------------------------------------------------------
// IPROTO wire constants
// --------------------------------------------------------------------------

// Request type codes of the box protocol (generation 1.5).
// Insert and Replace share RequestTypeInsert and are distinguished by flags.
// Update is reserved by the protocol but not exposed as a client operation.
const (
	RequestTypeInsert uint32 = 13
	RequestTypeUpdate uint32 = 19
	RequestTypeSelect uint32 = 17
	RequestTypeDelete uint32 = 21
	RequestTypeCall   uint32 = 22
	RequestTypePing   uint32 = 65280
)

// Flags carried in the body of mutating requests.
const (
	FlagReturnTuple uint32 = 0x01 // respond with the affected tuple instead of a count
	FlagAdd         uint32 = 0x02 // fail if the tuple already exists (insert)
	FlagReplace     uint32 = 0x04 // fail if the tuple does not exist (replace)
)

// LimitUnbounded is the select limit meaning "no limit".
const LimitUnbounded uint32 = 0xFFFFFFFF

// RequestTypeName returns a human-readable name for a request type code.
func RequestTypeName(t uint32) string {
	switch t {
	case RequestTypeInsert:
		return "insert"
	case RequestTypeUpdate:
		return "update"
	case RequestTypeSelect:
		return "select"
	case RequestTypeDelete:
		return "delete"
	case RequestTypeCall:
		return "call"
	case RequestTypePing:
		return "ping"
	default:
		return fmt.Sprintf("type(%d)", t)
	}
}

// --------------------------------------------------------------------------
// Packet framing
// --------------------------------------------------------------------------

// HeaderSize is the fixed size of the packet header:
// - 4 bytes: request type (uint32, little endian)
// - 4 bytes: body length (uint32, little endian)
// - 4 bytes: request id (uint32, little endian)
// The header is followed by exactly body-length bytes of body.
const HeaderSize = 12

// RawPacket is one complete packet cut out of the inbound byte stream.
// The body is not interpreted here; decoding belongs to the codec.
type RawPacket struct {
	Type      uint32
	RequestID uint32
	Body      []byte
}

// AppendHeader appends the 12-byte packet header for the given request
// to dst and returns the extended slice.
func AppendHeader(dst []byte, reqType, requestID uint32, bodyLen int) []byte {
	var h [HeaderSize]byte
	binary.LittleEndian.PutUint32(h[0:4], reqType)
	binary.LittleEndian.PutUint32(h[4:8], uint32(bodyLen))
	binary.LittleEndian.PutUint32(h[8:12], requestID)
	return append(dst, h[:]...)
}

// Extract cuts all complete packets off the front of buf.
//
// It returns the packets in stream order together with the unconsumed
// remainder, which the caller must prepend to the next inbound chunk.
// Header bytes are never consumed speculatively: if the buffer holds a
// header but not yet the full body, the original buffer is returned
// unchanged. Extract is a pure function; all framing state lives in the
// caller-held remainder. Zero-length bodies (ping) are valid packets.
func Extract(buf []byte) (packets []RawPacket, rest []byte) {
	rest = buf
	for {
		if len(rest) < HeaderSize {
			return packets, rest
		}
		bodyLen := binary.LittleEndian.Uint32(rest[4:8])
		total := HeaderSize + int(bodyLen)
		if len(rest) < total {
			return packets, rest
		}
		pkt := RawPacket{
			Type:      binary.LittleEndian.Uint32(rest[0:4]),
			RequestID: binary.LittleEndian.Uint32(rest[8:12]),
		}
		if bodyLen > 0 {
			// Copy the body out so the remainder buffer can be reused.
			pkt.Body = make([]byte, bodyLen)
			copy(pkt.Body, rest[HeaderSize:total])
		}
		packets = append(packets, pkt)
		rest = rest[total:]
	}
}
