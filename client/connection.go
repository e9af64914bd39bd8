package client

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/wkhere/tarantool/codec"
	"github.com/wkhere/tarantool/common"
	"github.com/wkhere/tarantool/transport"
)

var Logger = logger.GetLogger("client")

// defaultReadChunkSize is the size of one inbound read when the config
// does not set a read buffer size.
const defaultReadChunkSize = 64 * 1024

// connState is the lifecycle state of a connection.
type connState int32

const (
	stateConnecting connState = iota
	stateOpen
	stateClosed
)

// Connection is one open IPROTO session. It exclusively owns its
// transport: all writes go through writePacket under writeMu, and a
// single reader goroutine consumes inbound chunks, reassembles packets
// and dispatches them to the pending-request table. The delivery mode
// is fixed at connect time.
type Connection struct {
	config common.ClientConfig
	codec  codec.ICodec
	conn   net.Conn
	policy deliveryPolicy

	pending       *pendingTable
	nextRequestID atomic.Uint32
	writeMu       sync.Mutex // serializes header||body writes

	state      atomic.Int32
	fatal      atomic.Value // error that caused teardown, if any
	notifyCh   chan Notification
	closeCh    chan struct{}
	closeOnce  sync.Once
	readerDone chan struct{}
}

// Connect dials the configured endpoint through the connector, applies
// the socket options, and starts the connection's reader goroutine.
// The zero Mode means ModeSync.
func Connect(config common.ClientConfig, connector transport.IConnector, cdc codec.ICodec) (*Connection, error) {
	if config.Mode != "" && !config.Mode.Valid() {
		return nil, common.NewValidationError(fmt.Sprintf("unknown delivery mode %q", config.Mode))
	}
	if config.Transport.Endpoint == "" {
		return nil, common.NewValidationError("no endpoint provided")
	}

	c := &Connection{
		config:     config,
		codec:      cdc,
		policy:     policyFor(config.DeliveryMode()),
		pending:    newPendingTable(),
		closeCh:    make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	c.state.Store(int32(stateConnecting))

	if config.DeliveryMode() == common.ModeAsync {
		size := config.NotifyBuffer
		if size <= 0 {
			size = common.DefaultNotifyBuffer
		}
		c.notifyCh = make(chan Notification, size)
	}

	conn, err := connector.Connect(config.Transport.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", config.Transport.Endpoint, err)
	}
	if err := connector.UpgradeConnection(conn, config); err != nil {
		conn.Close()
		return nil, fmt.Errorf("upgrade connection to %s: %w", config.Transport.Endpoint, err)
	}

	c.conn = conn
	c.state.Store(int32(stateOpen))
	Logger.Infof("Connected to %s via %s (%s mode)",
		config.Transport.Endpoint, connector.GetName(), config.DeliveryMode())

	go c.readLoop()

	return c, nil
}

// Notifications returns the channel async results are delivered on.
// It is nil unless the connection was opened in ModeAsync. The channel
// is closed during teardown, after every pending request has been
// resolved; consumers must keep receiving until then.
func (c *Connection) Notifications() <-chan Notification {
	return c.notifyCh
}

// Pending returns the number of currently outstanding requests.
func (c *Connection) Pending() int {
	return c.pending.Size()
}

// Close stops the connection: no further requests are written, the
// transport is released, and every outstanding waiter is resolved with
// a connection-closed failure. Close is idempotent and returns after
// teardown has completed.
func (c *Connection) Close() error {
	c.shutdown(nil)
	return nil
}

// --------------------------------------------------------------------------
// Request path
// --------------------------------------------------------------------------

// invoke runs the common operation template: validate, encode, allocate
// a request id, register the pending entry, write the packet, and
// complete per the delivery policy.
func (c *Connection) invoke(req *common.Request) (*Response, error) {
	if connState(c.state.Load()) != stateOpen {
		return nil, c.closeReason()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// An encoding failure short-circuits before any id is allocated.
	reqType, body, err := c.codec.EncodeRequest(req)
	if err != nil {
		return nil, common.NewValidationError(fmt.Sprintf("encode %s: %v", req.Op, err))
	}

	id := c.nextRequestID.Add(1)
	entry := c.policy.newEntry(reqType)
	if err := c.pending.Register(id, entry); err != nil {
		c.shutdown(err)
		return nil, err
	}

	requestCounter(req.Op).Inc()

	if err := c.writePacket(reqType, id, body); err != nil {
		err = fmt.Errorf("write %s request: %w", req.Op, err)
		c.shutdown(err)
		return nil, err
	}

	return c.policy.await(c, id, entry)
}

// writePacket writes header||body as one atomic write.
func (c *Connection) writePacket(reqType, id uint32, body []byte) error {
	buf := make([]byte, 0, common.HeaderSize+len(body))
	buf = common.AppendHeader(buf, reqType, id, len(body))
	buf = append(buf, body...)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	n, err := c.conn.Write(buf)
	bytesOutCounter.Add(n)
	return err
}

// --------------------------------------------------------------------------
// Reader and dispatcher
// --------------------------------------------------------------------------

// readLoop is the connection's single reader. It accumulates inbound
// chunks, extracts complete packets, and dispatches each one. Cleanup
// runs here and only here, so deliveries and the notification-channel
// close never race.
func (c *Connection) readLoop() {
	defer c.cleanup()

	chunkSize := c.config.Transport.ReadBufferSize
	if chunkSize <= 0 {
		chunkSize = defaultReadChunkSize
	}
	chunk := make([]byte, chunkSize)

	var leftover []byte
	for {
		n, err := c.conn.Read(chunk)
		if n > 0 {
			bytesInCounter.Add(n)
			leftover = append(leftover, chunk[:n]...)

			var packets []common.RawPacket
			packets, leftover = common.Extract(leftover)
			for _, pkt := range packets {
				if derr := c.dispatch(pkt); derr != nil {
					c.record(derr)
					return
				}
			}
		}
		if err != nil {
			if connState(c.state.Load()) == stateClosed {
				return // Close() released the transport
			}
			c.record(fmt.Errorf("transport read: %w", err))
			return
		}
	}
}

// dispatch resolves one complete packet against the pending table and
// performs the mode-specific delivery. A returned error is fatal to the
// connection.
func (c *Connection) dispatch(pkt common.RawPacket) error {
	entry, err := c.pending.Resolve(pkt.RequestID, pkt.Type)
	if err != nil {
		c.failEntry(pkt.RequestID, entry, err)
		return err
	}

	res, err := c.codec.DecodeResponse(pkt.Type, pkt.Body)
	if err != nil && common.IsFatal(err) {
		// Framing integrity is suspect; do not keep serving requests.
		err = fmt.Errorf("decode %s response: %w", common.RequestTypeName(pkt.Type), err)
		c.failEntry(pkt.RequestID, entry, err)
		return err
	}

	if err != nil {
		errorCounter.Inc()
	} else {
		responseCounter.Inc()
	}

	c.policy.deliver(c, pkt.RequestID, entry, outcome{result: res, err: err})
	return nil
}

// failEntry resolves an entry that Resolve has already removed but that
// cannot be delivered normally because its packet was fatal. Teardown's
// Drain no longer sees the entry, so its waiter must be resolved here —
// with the connection-closed failure, never zero times.
func (c *Connection) failEntry(id uint32, e *pendingEntry, cause error) {
	if e == nil {
		return
	}
	c.record(cause)
	c.policy.deliver(c, id, e, outcome{err: c.closeReason()})
}

// --------------------------------------------------------------------------
// Teardown
// --------------------------------------------------------------------------

// record marks the connection closed and releases the transport. A nil
// cause is a requested close; anything else is a transport or protocol
// failure. First caller wins.
func (c *Connection) record(cause error) {
	c.closeOnce.Do(func() {
		if cause != nil {
			c.fatal.Store(cause)
			Logger.Errorf("Connection to %s failed: %v", c.config.Transport.Endpoint, cause)
		} else {
			Logger.Infof("Connection to %s closed", c.config.Transport.Endpoint)
		}
		c.state.Store(int32(stateClosed))
		close(c.closeCh)
		_ = c.conn.Close()
	})
}

// shutdown records the cause and waits for the reader to finish
// cleanup, so every pending waiter has been resolved when it returns.
func (c *Connection) shutdown(cause error) {
	c.record(cause)
	<-c.readerDone
}

// cleanup drains the pending table, resolving every remaining waiter
// with a connection-closed failure, then closes the notification
// channel. It runs exactly once, in the reader goroutine, after the
// connection is marked closed.
func (c *Connection) cleanup() {
	c.record(nil)

	failure := c.closeReason()
	drained := c.pending.Drain()
	for _, d := range drained {
		c.policy.deliver(c, d.id, d.entry, outcome{err: failure})
	}
	if len(drained) > 0 {
		Logger.Warningf("Resolved %d outstanding requests with %v", len(drained), failure)
	}

	if c.notifyCh != nil {
		close(c.notifyCh)
	}
	close(c.readerDone)
}

// closeReason returns the connection-closed failure callers see,
// wrapping the fatal cause when there was one.
func (c *Connection) closeReason() error {
	if cause, ok := c.fatal.Load().(error); ok && cause != nil {
		return fmt.Errorf("%w: %v", common.ErrClosed, cause)
	}
	return common.ErrClosed
}
