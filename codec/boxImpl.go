package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/wkhere/tarantool/common"
)

// NewBoxCodec creates the codec for the box protocol body formats
// (IPROTO generation 1.5). All integers are little-endian; tuple fields
// are BER-varint length-prefixed byte strings.
func NewBoxCodec() ICodec {
	return &boxCodecImpl{}
}

// boxCodecImpl implements ICodec for the box protocol
type boxCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (c *boxCodecImpl) EncodeRequest(req *common.Request) (uint32, []byte, error) {
	switch req.Op {
	case common.OpPing:
		// Ping has an empty body.
		return common.RequestTypePing, nil, nil

	case common.OpSelect:
		// <space><index><offset><limit><count><key tuple>+
		body := make([]byte, 0, 20+tuplesSize(req.Tuples))
		body = appendUint32(body, req.Space)
		body = appendUint32(body, req.Index)
		body = appendUint32(body, req.Offset)
		body = appendUint32(body, req.Limit)
		body = appendUint32(body, uint32(len(req.Tuples)))
		for _, key := range req.Tuples {
			body = appendTuple(body, key)
		}
		return common.RequestTypeSelect, body, nil

	case common.OpInsert, common.OpReplace:
		// <space><flags><tuple>
		flags := common.FlagAdd
		if req.Op == common.OpReplace {
			flags = common.FlagReplace
		}
		if req.ReturnTuple {
			flags |= common.FlagReturnTuple
		}
		body := make([]byte, 0, 8+tupleSize(req.Tuples[0]))
		body = appendUint32(body, req.Space)
		body = appendUint32(body, flags)
		body = appendTuple(body, req.Tuples[0])
		return common.RequestTypeInsert, body, nil

	case common.OpDelete:
		// <space><flags><key tuple>
		var flags uint32
		if req.ReturnTuple {
			flags |= common.FlagReturnTuple
		}
		body := make([]byte, 0, 8+tupleSize(req.Tuples[0]))
		body = appendUint32(body, req.Space)
		body = appendUint32(body, flags)
		body = appendTuple(body, req.Tuples[0])
		return common.RequestTypeDelete, body, nil

	case common.OpCall:
		// <flags><proc field><args tuple>
		body := make([]byte, 0, 4+fieldSize(common.Field(req.Proc))+tupleSize(req.Args))
		body = appendUint32(body, 0)
		body = appendField(body, common.Field(req.Proc))
		body = appendTuple(body, req.Args)
		return common.RequestTypeCall, body, nil

	default:
		return 0, nil, fmt.Errorf("cannot encode operation %s", req.Op)
	}
}

func (c *boxCodecImpl) DecodeResponse(respType uint32, body []byte) (*common.Result, error) {
	if respType == common.RequestTypePing {
		// Ping responses carry no body.
		if len(body) != 0 {
			return nil, fmt.Errorf("ping response with %d body bytes", len(body))
		}
		return &common.Result{}, nil
	}

	// <return code><payload>
	if len(body) < 4 {
		return nil, fmt.Errorf("response body too short for return code: %d bytes", len(body))
	}
	code := binary.LittleEndian.Uint32(body[:4])
	rest := body[4:]

	if code != 0 {
		return nil, &common.ServerError{Code: code, Reason: errorReason(rest)}
	}

	// <count> alone for affected rows, or <count><fq tuple>+ for data.
	if len(rest) < 4 {
		return nil, fmt.Errorf("response body too short for row count: %d bytes", len(rest))
	}
	count := binary.LittleEndian.Uint32(rest[:4])
	rest = rest[4:]

	res := &common.Result{Count: count}
	if len(rest) == 0 {
		return res, nil
	}

	res.Tuples = make([]common.Tuple, 0, count)
	for i := uint32(0); i < count; i++ {
		var (
			tuple common.Tuple
			err   error
		)
		tuple, rest, err = decodeFqTuple(rest)
		if err != nil {
			return nil, fmt.Errorf("tuple %d: %w", i, err)
		}
		res.Tuples = append(res.Tuples, tuple)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d trailing bytes after %d tuples", len(rest), count)
	}
	return res, nil
}

// --------------------------------------------------------------------------
// Encoding helpers
// --------------------------------------------------------------------------

func appendUint32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

// appendField appends a varint length prefix followed by the field bytes.
func appendField(dst []byte, f common.Field) []byte {
	dst = appendVarint(dst, uint32(len(f)))
	return append(dst, f...)
}

// appendTuple appends <cardinality:u32> followed by the encoded fields.
func appendTuple(dst []byte, t common.Tuple) []byte {
	dst = appendUint32(dst, uint32(len(t)))
	for _, f := range t {
		dst = appendField(dst, f)
	}
	return dst
}

func fieldSize(f common.Field) int {
	return varintSize(uint32(len(f))) + len(f)
}

func tupleSize(t common.Tuple) int {
	size := 4
	for _, f := range t {
		size += fieldSize(f)
	}
	return size
}

func tuplesSize(ts []common.Tuple) int {
	var size int
	for _, t := range ts {
		size += tupleSize(t)
	}
	return size
}

// --------------------------------------------------------------------------
// Decoding helpers
// --------------------------------------------------------------------------

// decodeFqTuple reads one fully-qualified response tuple:
// <size:u32><cardinality:u32><field>+ where size counts the field bytes.
func decodeFqTuple(data []byte) (common.Tuple, []byte, error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("data too short for tuple header")
	}
	size := binary.LittleEndian.Uint32(data[:4])
	cardinality := binary.LittleEndian.Uint32(data[4:8])
	data = data[8:]

	if uint32(len(data)) < size {
		return nil, nil, fmt.Errorf("data too short for tuple of %d bytes", size)
	}
	fields, rest := data[:size], data[size:]

	tuple := make(common.Tuple, 0, cardinality)
	for i := uint32(0); i < cardinality; i++ {
		flen, n, err := decodeVarint(fields)
		if err != nil {
			return nil, nil, fmt.Errorf("field %d length: %w", i, err)
		}
		fields = fields[n:]
		if uint32(len(fields)) < flen {
			return nil, nil, fmt.Errorf("data too short for field %d of %d bytes", i, flen)
		}
		field := make(common.Field, flen)
		copy(field, fields[:flen])
		tuple = append(tuple, field)
		fields = fields[flen:]
	}
	if len(fields) != 0 {
		return nil, nil, fmt.Errorf("%d stray bytes inside tuple", len(fields))
	}
	return tuple, rest, nil
}

// errorReason extracts the human-readable reason from an error payload,
// trimming the trailing NUL the server appends.
func errorReason(data []byte) string {
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return string(data)
}

// --------------------------------------------------------------------------
// BER varint
// --------------------------------------------------------------------------

// Field lengths use the BER-compressed integer form: base-128 digits,
// most significant first, high bit set on every byte but the last.

func appendVarint(dst []byte, v uint32) []byte {
	switch {
	case v < 1<<7:
		return append(dst, byte(v))
	case v < 1<<14:
		return append(dst, byte(v>>7)|0x80, byte(v&0x7F))
	case v < 1<<21:
		return append(dst, byte(v>>14)|0x80, byte(v>>7)|0x80, byte(v&0x7F))
	case v < 1<<28:
		return append(dst, byte(v>>21)|0x80, byte(v>>14)|0x80, byte(v>>7)|0x80, byte(v&0x7F))
	default:
		return append(dst, byte(v>>28)|0x80, byte(v>>21)|0x80, byte(v>>14)|0x80, byte(v>>7)|0x80, byte(v&0x7F))
	}
}

func varintSize(v uint32) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	default:
		return 5
	}
}

func decodeVarint(data []byte) (v uint32, n int, err error) {
	for n < len(data) {
		if n == 5 {
			return 0, 0, fmt.Errorf("varint longer than 5 bytes")
		}
		b := data[n]
		v = v<<7 | uint32(b&0x7F)
		n++
		if b&0x80 == 0 {
			return v, n, nil
		}
	}
	return 0, 0, fmt.Errorf("truncated varint")
}
