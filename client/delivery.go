package client

import (
	"errors"
	"time"

	"github.com/wkhere/tarantool/common"
)

// ErrTimeout is returned by synchronous calls whose configured timeout
// fired before the response arrived. The request stays pending: the
// response may still arrive and is then dispatched and discarded.
var ErrTimeout = errors.New("iproto: request timed out")

// Notification carries one asynchronously resolved result to the
// original caller, tagged with the request id it answers.
type Notification struct {
	RequestID uint32
	Result    *common.Result
	Err       error
}

// Response is what a public operation returns. Result is only set in
// sync mode; in async and discard modes the caller gets the allocated
// request id immediately.
type Response struct {
	RequestID uint32
	Result    *common.Result
}

// deliveryPolicy is the delivery discipline of a connection, selected
// once at connect time. newEntry builds the pending entry for a request,
// await completes the caller side after the write, and deliver hands a
// resolved outcome to the waiter. deliver is only ever called from the
// connection's reader context (dispatch or teardown), so a single id is
// delivered at most once.
type deliveryPolicy interface {
	newEntry(reqType uint32) *pendingEntry
	await(c *Connection, id uint32, e *pendingEntry) (*Response, error)
	deliver(c *Connection, id uint32, e *pendingEntry, out outcome)
}

func policyFor(mode common.Mode) deliveryPolicy {
	switch mode {
	case common.ModeAsync:
		return asyncDelivery{}
	case common.ModeDiscard:
		return discardDelivery{}
	default:
		return syncDelivery{}
	}
}

// --------------------------------------------------------------------------
// Synchronous delivery
// --------------------------------------------------------------------------

// syncDelivery suspends the calling goroutine on a buffered channel
// until the dispatcher or teardown resolves the request. The connection
// reader is never blocked by a waiting caller.
type syncDelivery struct{}

func (syncDelivery) newEntry(reqType uint32) *pendingEntry {
	return &pendingEntry{reqType: reqType, waiter: make(chan outcome, 1)}
}

func (syncDelivery) await(c *Connection, id uint32, e *pendingEntry) (*Response, error) {
	var timeoutCh <-chan time.Time
	if c.config.TimeoutSecond > 0 {
		timer := time.NewTimer(time.Duration(c.config.TimeoutSecond) * time.Second)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case out := <-e.waiter:
		if out.err != nil {
			return nil, out.err
		}
		return &Response{RequestID: id, Result: out.result}, nil
	case <-timeoutCh:
		// Advisory only: the entry stays registered so a late response
		// is still resolved safely.
		return nil, ErrTimeout
	}
}

func (syncDelivery) deliver(_ *Connection, _ uint32, e *pendingEntry, out outcome) {
	e.waiter <- out
}

// --------------------------------------------------------------------------
// Asynchronous delivery
// --------------------------------------------------------------------------

// asyncDelivery returns the request id immediately and later pushes the
// resolved outcome onto the connection's notification channel.
type asyncDelivery struct{}

func (asyncDelivery) newEntry(reqType uint32) *pendingEntry {
	return &pendingEntry{reqType: reqType}
}

func (asyncDelivery) await(_ *Connection, id uint32, _ *pendingEntry) (*Response, error) {
	return &Response{RequestID: id}, nil
}

func (asyncDelivery) deliver(c *Connection, id uint32, _ *pendingEntry, out outcome) {
	c.notifyCh <- Notification{RequestID: id, Result: out.result, Err: out.err}
}

// --------------------------------------------------------------------------
// Discard delivery
// --------------------------------------------------------------------------

// discardDelivery returns the request id immediately and drops the
// resolved outcome. Resolve has already removed the pending entry, so
// the table cannot grow without bound.
type discardDelivery struct{}

func (discardDelivery) newEntry(reqType uint32) *pendingEntry {
	return &pendingEntry{reqType: reqType}
}

func (discardDelivery) await(_ *Connection, id uint32, _ *pendingEntry) (*Response, error) {
	return &Response{RequestID: id}, nil
}

func (discardDelivery) deliver(_ *Connection, _ uint32, _ *pendingEntry, _ outcome) {
}
