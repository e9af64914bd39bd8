package codec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkhere/tarantool/common"
)

func u32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// fqTuple builds a response-side tuple: <size><cardinality><field>+
func fqTuple(fields ...[]byte) []byte {
	var data []byte
	for _, f := range fields {
		data = append(data, appendField(nil, f)...)
	}
	return cat(u32(uint32(len(data))), u32(uint32(len(fields))), data)
}

// --------------------------------------------------------------------------
// Request encoding
// --------------------------------------------------------------------------

func TestEncodePing(t *testing.T) {
	typ, body, err := NewBoxCodec().EncodeRequest(common.NewPingRequest())
	require.NoError(t, err)
	assert.Equal(t, common.RequestTypePing, typ)
	assert.Empty(t, body)
}

func TestEncodeInsert(t *testing.T) {
	req := common.NewInsertRequest(2, common.MustTuple(uint32(1), "ab"),
		&common.MutateOptions{ReturnTuple: true})

	typ, body, err := NewBoxCodec().EncodeRequest(req)
	require.NoError(t, err)
	assert.Equal(t, common.RequestTypeInsert, typ)

	want := cat(
		u32(2), // space
		u32(common.FlagAdd|common.FlagReturnTuple),
		u32(2),               // cardinality
		[]byte{4}, u32(1),    // field 1: varint len + bytes
		[]byte{2}, []byte("ab"), // field 2
	)
	assert.Equal(t, want, body)
}

func TestEncodeReplaceFlags(t *testing.T) {
	req := common.NewReplaceRequest(0, common.MustTuple(uint32(1)), nil)

	typ, body, err := NewBoxCodec().EncodeRequest(req)
	require.NoError(t, err)
	assert.Equal(t, common.RequestTypeInsert, typ)
	assert.Equal(t, common.FlagReplace, binary.LittleEndian.Uint32(body[4:8]))
}

func TestEncodeDelete(t *testing.T) {
	req := common.NewDeleteRequest(5, common.MustTuple(uint32(9)), nil)

	typ, body, err := NewBoxCodec().EncodeRequest(req)
	require.NoError(t, err)
	assert.Equal(t, common.RequestTypeDelete, typ)

	want := cat(u32(5), u32(0), u32(1), []byte{4}, u32(9))
	assert.Equal(t, want, body)
}

func TestEncodeSelect(t *testing.T) {
	keys := []common.Tuple{common.MustTuple(uint32(1)), common.MustTuple(uint32(2))}
	req := common.NewSelectRequest(3, 1, keys, &common.SelectOptions{Offset: 10, Limit: 100})

	typ, body, err := NewBoxCodec().EncodeRequest(req)
	require.NoError(t, err)
	assert.Equal(t, common.RequestTypeSelect, typ)

	want := cat(
		u32(3), u32(1), u32(10), u32(100),
		u32(2), // key count
		u32(1), []byte{4}, u32(1),
		u32(1), []byte{4}, u32(2),
	)
	assert.Equal(t, want, body)
}

func TestEncodeSelectUnboundedLimit(t *testing.T) {
	req := common.NewSelectRequest(0, 0, []common.Tuple{common.MustTuple(uint32(1))}, nil)

	_, body, err := NewBoxCodec().EncodeRequest(req)
	require.NoError(t, err)
	assert.Equal(t, common.LimitUnbounded, binary.LittleEndian.Uint32(body[12:16]))
}

func TestEncodeCall(t *testing.T) {
	req := common.NewCallRequest("box.f", common.MustTuple("arg"))

	typ, body, err := NewBoxCodec().EncodeRequest(req)
	require.NoError(t, err)
	assert.Equal(t, common.RequestTypeCall, typ)

	want := cat(
		u32(0),                      // flags
		[]byte{5}, []byte("box.f"),  // proc
		u32(1), []byte{3}, []byte("arg"), // args tuple
	)
	assert.Equal(t, want, body)
}

// --------------------------------------------------------------------------
// Response decoding
// --------------------------------------------------------------------------

func TestDecodePing(t *testing.T) {
	res, err := NewBoxCodec().DecodeResponse(common.RequestTypePing, nil)
	require.NoError(t, err)
	assert.Equal(t, &common.Result{}, res)

	_, err = NewBoxCodec().DecodeResponse(common.RequestTypePing, []byte{0})
	assert.Error(t, err)
}

func TestDecodeAffectedCount(t *testing.T) {
	body := cat(u32(0), u32(3))

	res, err := NewBoxCodec().DecodeResponse(common.RequestTypeDelete, body)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), res.Count)
	assert.Nil(t, res.Tuples)
}

func TestDecodeTuples(t *testing.T) {
	body := cat(
		u32(0), u32(2),
		fqTuple(u32(1), []byte("one")),
		fqTuple(u32(2), []byte("two")),
	)

	res, err := NewBoxCodec().DecodeResponse(common.RequestTypeSelect, body)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), res.Count)
	require.Len(t, res.Tuples, 2)

	n, ok := res.Tuples[0][0].Uint32()
	assert.True(t, ok)
	assert.Equal(t, uint32(1), n)
	assert.Equal(t, "one", res.Tuples[0][1].String())
	assert.Equal(t, "two", res.Tuples[1][1].String())
}

func TestDecodeServerError(t *testing.T) {
	body := cat(u32(0x3102), []byte("Tuple doesn't exist\x00"))

	_, err := NewBoxCodec().DecodeResponse(common.RequestTypeDelete, body)
	require.Error(t, err)

	var srvErr *common.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, uint32(0x3102), srvErr.Code)
	assert.Equal(t, "Tuple doesn't exist", srvErr.Reason)
	assert.False(t, common.IsFatal(err))
}

func TestDecodeMalformedIsFatal(t *testing.T) {
	codec := NewBoxCodec()

	cases := map[string][]byte{
		"short return code": {0x00},
		"missing count":     u32(0),
		"truncated tuple":   cat(u32(0), u32(1), u32(100), u32(1)),
		"trailing garbage":  cat(u32(0), u32(1), fqTuple([]byte("x")), []byte{0xde, 0xad}),
		"stray tuple bytes": cat(u32(0), u32(1), u32(5), u32(1), []byte{1, 'a', 0xff, 0xff, 0xff}),
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.DecodeResponse(common.RequestTypeSelect, body)
			require.Error(t, err)
			assert.True(t, common.IsFatal(err))
		})
	}
}

// --------------------------------------------------------------------------
// Varint
// --------------------------------------------------------------------------

func TestVarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 1 << 14, 1<<21 - 1, 1 << 21, 1 << 28, 0xFFFFFFFF}

	for _, v := range values {
		enc := appendVarint(nil, v)
		assert.Len(t, enc, varintSize(v))

		got, n, err := decodeVarint(enc)
		require.NoError(t, err, "value %d", v)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, v, got)
	}
}

func TestVarintKnownEncodings(t *testing.T) {
	assert.Equal(t, []byte{0x7f}, appendVarint(nil, 127))
	assert.Equal(t, []byte{0x81, 0x00}, appendVarint(nil, 128))
}

func TestVarintErrors(t *testing.T) {
	_, _, err := decodeVarint(nil)
	assert.Error(t, err)

	_, _, err = decodeVarint([]byte{0x80, 0x80})
	assert.Error(t, err)

	_, _, err = decodeVarint([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	assert.Error(t, err)
}
