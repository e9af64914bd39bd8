package client

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wkhere/tarantool/common"
)

// outcome is a resolved response: a decoded result or a failure.
type outcome struct {
	result *common.Result
	err    error
}

// pendingEntry is the value registered for one outstanding request id.
// The waiter channel is only set in sync mode; async and discard
// deliveries go through the policy without a per-entry channel.
type pendingEntry struct {
	reqType uint32
	waiter  chan outcome // buffered(1) so a late resolve never blocks
}

// pendingTable maps outstanding request ids to their entries. It is
// only mutated through Register, Resolve and Drain, each of which
// removes or inserts an entry exactly once.
type pendingTable struct {
	entries *xsync.MapOf[uint32, *pendingEntry]
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: xsync.NewMapOf[uint32, *pendingEntry]()}
}

// Register stores the entry under id. A duplicate id is an integrity
// error: it can only happen after a 2^32 wrap with the old request
// still outstanding, at which point the id space is not trustworthy.
func (t *pendingTable) Register(id uint32, e *pendingEntry) error {
	if _, loaded := t.entries.LoadOrStore(id, e); loaded {
		return common.NewProtocolError("request id %d already pending", id)
	}
	return nil
}

// Resolve removes and returns the entry for id after verifying the
// response type matches the registered request type. An absent id
// (unsolicited or duplicate response) and a type mismatch are both
// fatal to the connection. On a mismatch the removed entry is returned
// together with the error: it is already gone from the table, so a
// later Drain cannot see it and the caller must resolve its waiter.
func (t *pendingTable) Resolve(id, respType uint32) (*pendingEntry, error) {
	e, ok := t.entries.LoadAndDelete(id)
	if !ok {
		return nil, common.NewProtocolError("unsolicited response for request id %d", id)
	}
	if e.reqType != respType {
		return e, common.NewProtocolError(
			"response type mismatch for request id %d: got %s, want %s",
			id, common.RequestTypeName(respType), common.RequestTypeName(e.reqType))
	}
	return e, nil
}

// drained is one entry removed during teardown.
type drained struct {
	id    uint32
	entry *pendingEntry
}

// Drain removes and returns every remaining entry so teardown can
// resolve each waiter with a connection-closed failure. LoadAndDelete
// keeps removal exclusive against a concurrent Resolve of the same id.
func (t *pendingTable) Drain() []drained {
	var out []drained
	t.entries.Range(func(id uint32, _ *pendingEntry) bool {
		if e, ok := t.entries.LoadAndDelete(id); ok {
			out = append(out, drained{id: id, entry: e})
		}
		return true
	})
	return out
}

// Size returns the number of outstanding requests.
func (t *pendingTable) Size() int {
	return t.entries.Size()
}
