package codec

import "github.com/wkhere/tarantool/common"

// ICodec is the interface for request/response body codecs.
// Implementations are pure and synchronous; they perform no I/O and hold
// no connection state.
type ICodec interface {
	// EncodeRequest encodes a validated request into its wire type and
	// packet body. Encoding failures are local to the request and must
	// not allocate protocol resources.
	EncodeRequest(req *common.Request) (reqType uint32, body []byte, err error)

	// DecodeResponse decodes a response body of the given wire type.
	// A failure the server declared for this request is returned as a
	// *common.ServerError; any other error means the bytes cannot be
	// trusted and is fatal to the connection.
	DecodeResponse(respType uint32, body []byte) (*common.Result, error)
}
