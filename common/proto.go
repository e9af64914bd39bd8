package common

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Operation Definition
// --------------------------------------------------------------------------

// Operation identifies a public client operation.
type Operation uint8

const (
	OpUnknown Operation = iota
	OpPing
	OpSelect
	OpInsert
	OpReplace
	OpDelete
	OpCall
)

// String returns the string representation of an Operation.
func (o Operation) String() string {
	switch o {
	case OpPing:
		return "ping"
	case OpSelect:
		return "select"
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	case OpCall:
		return "call"
	default:
		return "unknown"
	}
}

// Type returns the wire request type the operation is encoded as.
// This is also the type the response packet must carry.
func (o Operation) Type() uint32 {
	switch o {
	case OpPing:
		return RequestTypePing
	case OpSelect:
		return RequestTypeSelect
	case OpInsert, OpReplace:
		return RequestTypeInsert
	case OpDelete:
		return RequestTypeDelete
	case OpCall:
		return RequestTypeCall
	default:
		return 0
	}
}

// --------------------------------------------------------------------------
// Per-operation option structs
// --------------------------------------------------------------------------

// SelectOptions holds the recognized options of a select request.
// A nil options pointer means offset 0 and an unbounded limit.
type SelectOptions struct {
	Offset uint32
	Limit  uint32 // 0 means unbounded
}

// MutateOptions holds the recognized options of insert/replace/delete.
// A nil options pointer means ReturnTuple=false.
type MutateOptions struct {
	// ReturnTuple requests the mutated tuple in the response instead of
	// an affected-row count.
	ReturnTuple bool
}

// --------------------------------------------------------------------------
// Request structure
// --------------------------------------------------------------------------

// Request is a single logical request before encoding. Which fields are
// used depends on the operation.
type Request struct {
	Op Operation

	// Space operations
	Space  uint32
	Index  uint32  // select only
	Tuples []Tuple // select: keys; insert/replace/delete: exactly one tuple

	// Call
	Proc string
	Args Tuple

	// Options
	ReturnTuple bool
	Offset      uint32
	Limit       uint32
}

// --------------------------------------------------------------------------
// Request Factory Functions
// --------------------------------------------------------------------------

// NewPingRequest creates a new Ping request.
func NewPingRequest() *Request {
	return &Request{Op: OpPing}
}

// NewSelectRequest creates a new Select request for the given keys.
// Each key tuple holds the leading fields of the index, in index order.
func NewSelectRequest(space, index uint32, keys []Tuple, opts *SelectOptions) *Request {
	req := &Request{
		Op:     OpSelect,
		Space:  space,
		Index:  index,
		Tuples: keys,
		Limit:  LimitUnbounded,
	}
	if opts != nil {
		req.Offset = opts.Offset
		if opts.Limit != 0 {
			req.Limit = opts.Limit
		}
	}
	return req
}

// NewInsertRequest creates a new Insert request for one tuple.
func NewInsertRequest(space uint32, tuple Tuple, opts *MutateOptions) *Request {
	return newMutateRequest(OpInsert, space, tuple, opts)
}

// NewReplaceRequest creates a new Replace request for one tuple.
func NewReplaceRequest(space uint32, tuple Tuple, opts *MutateOptions) *Request {
	return newMutateRequest(OpReplace, space, tuple, opts)
}

// NewDeleteRequest creates a new Delete request for one key tuple.
func NewDeleteRequest(space uint32, key Tuple, opts *MutateOptions) *Request {
	return newMutateRequest(OpDelete, space, key, opts)
}

// NewCallRequest creates a new Call request for a stored procedure.
// No per-operation options are defined for call.
func NewCallRequest(proc string, args Tuple) *Request {
	return &Request{Op: OpCall, Proc: proc, Args: args}
}

func newMutateRequest(op Operation, space uint32, tuple Tuple, opts *MutateOptions) *Request {
	req := &Request{
		Op:     op,
		Space:  space,
		Tuples: []Tuple{tuple},
	}
	if opts != nil {
		req.ReturnTuple = opts.ReturnTuple
	}
	return req
}

// --------------------------------------------------------------------------
// Validation
// --------------------------------------------------------------------------

// Validate checks the request against the shape constraints of its
// operation. Validation failures are local to the caller and never reach
// the wire.
func (r *Request) Validate() error {
	switch r.Op {
	case OpPing:
		return nil
	case OpSelect:
		if len(r.Tuples) == 0 {
			return NewValidationError("select requires at least one key tuple")
		}
		for i, key := range r.Tuples {
			if len(key) == 0 {
				return NewValidationError(fmt.Sprintf("select key %d is empty", i))
			}
		}
		return nil
	case OpInsert, OpReplace, OpDelete:
		if len(r.Tuples) != 1 {
			return NewValidationError(fmt.Sprintf(
				"%s requires exactly one tuple, got %d", r.Op, len(r.Tuples)))
		}
		if len(r.Tuples[0]) == 0 {
			return NewValidationError(fmt.Sprintf("%s tuple is empty", r.Op))
		}
		return nil
	case OpCall:
		if r.Proc == "" {
			return NewValidationError("call requires a procedure name")
		}
		return nil
	default:
		return NewValidationError(fmt.Sprintf("unknown operation %d", r.Op))
	}
}

// --------------------------------------------------------------------------
// Result structure
// --------------------------------------------------------------------------

// Result is the decoded success payload of a response: either a sequence
// of tuples or a bare affected-row count (Tuples nil).
type Result struct {
	Count  uint32
	Tuples []Tuple
}
