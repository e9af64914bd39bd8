package client

import (
	"github.com/wkhere/tarantool/common"
)

// --------------------------------------------------------------------------
// Public operations
//
// Every operation follows the same template (see invoke): validate,
// encode, allocate a request id, register the pending entry, write
// header||body atomically, then complete per the delivery mode.
// --------------------------------------------------------------------------

// Ping sends an empty-body ping request.
func (c *Connection) Ping() (*Response, error) {
	return c.invoke(common.NewPingRequest())
}

// Select reads tuples from a space by index keys. Each key tuple holds
// the leading fields of the index, in index order. Options default to
// offset 0 and an unbounded limit.
func (c *Connection) Select(space, index uint32, keys []common.Tuple, opts *common.SelectOptions) (*Response, error) {
	return c.invoke(common.NewSelectRequest(space, index, keys, opts))
}

// Insert adds one tuple to a space, failing if a tuple with the same
// primary key already exists. With ReturnTuple the response carries the
// inserted tuple instead of an affected-row count.
func (c *Connection) Insert(space uint32, tuple common.Tuple, opts *common.MutateOptions) (*Response, error) {
	return c.invoke(common.NewInsertRequest(space, tuple, opts))
}

// Replace stores one tuple in a space, failing if no tuple with the
// same primary key exists.
func (c *Connection) Replace(space uint32, tuple common.Tuple, opts *common.MutateOptions) (*Response, error) {
	return c.invoke(common.NewReplaceRequest(space, tuple, opts))
}

// Delete removes the tuple matching the given primary key.
func (c *Connection) Delete(space uint32, key common.Tuple, opts *common.MutateOptions) (*Response, error) {
	return c.invoke(common.NewDeleteRequest(space, key, opts))
}

// Call invokes a stored procedure with the given argument tuple.
func (c *Connection) Call(proc string, args common.Tuple) (*Response, error) {
	return c.invoke(common.NewCallRequest(proc, args))
}
