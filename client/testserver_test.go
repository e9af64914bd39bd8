package client

import (
	"encoding/binary"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wkhere/tarantool/codec"
	"github.com/wkhere/tarantool/common"
	"github.com/wkhere/tarantool/transport/tcp"
)

// stubHandler produces the raw bytes to write back for one inbound
// packet; nil means no response. Handlers that need finer control
// (partial writes, dropping the peer) can use conn directly.
type stubHandler func(conn net.Conn, pkt common.RawPacket) []byte

// stubServer is a minimal in-process box-protocol server for the
// connection tests. It accepts one connection at a time, reassembles
// inbound packets, and answers through the configured handler.
type stubServer struct {
	ln      net.Listener
	handler stubHandler

	mu    sync.Mutex
	seen  []common.RawPacket
	conns []net.Conn
}

func newStubServer(t *testing.T, handler stubHandler) *stubServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &stubServer{ln: ln, handler: handler}
	go s.serve()
	t.Cleanup(s.stop)
	return s
}

func (s *stubServer) addr() string {
	return s.ln.Addr().String()
}

func (s *stubServer) stop() {
	s.ln.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		c.Close()
	}
}

// seenPackets returns a snapshot of every packet received so far.
func (s *stubServer) seenPackets() []common.RawPacket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.RawPacket, len(s.seen))
	copy(out, s.seen)
	return out
}

func (s *stubServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		go s.handleConn(conn)
	}
}

func (s *stubServer) handleConn(conn net.Conn) {
	defer conn.Close()

	var leftover []byte
	chunk := make([]byte, 4096)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			leftover = append(leftover, chunk[:n]...)

			var packets []common.RawPacket
			packets, leftover = common.Extract(leftover)
			for _, pkt := range packets {
				s.mu.Lock()
				s.seen = append(s.seen, pkt)
				s.mu.Unlock()

				if resp := s.handler(conn, pkt); resp != nil {
					if _, err := conn.Write(resp); err != nil {
						return
					}
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// --------------------------------------------------------------------------
// Response builders
// --------------------------------------------------------------------------

func respU32(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func respPacket(reqType, id uint32, body []byte) []byte {
	return append(common.AppendHeader(nil, reqType, id, len(body)), body...)
}

// respCount builds a success body carrying only an affected-row count.
func respCount(count uint32) []byte {
	return append(respU32(0), respU32(count)...)
}

// respTuples builds a success body carrying the given tuples.
func respTuples(tuples ...common.Tuple) []byte {
	body := append(respU32(0), respU32(uint32(len(tuples)))...)
	for _, tuple := range tuples {
		var fields []byte
		for _, f := range tuple {
			fields = appendVarintLen(fields, f)
		}
		body = append(body, respU32(uint32(len(fields)))...)
		body = append(body, respU32(uint32(len(tuple)))...)
		body = append(body, fields...)
	}
	return body
}

// respError builds a server failure body.
func respError(code uint32, reason string) []byte {
	body := respU32(code)
	body = append(body, reason...)
	return append(body, 0)
}

// appendVarintLen appends a field with its BER length prefix. Test
// fields stay under 128 bytes so one prefix byte suffices.
func appendVarintLen(dst []byte, f common.Field) []byte {
	if len(f) > 127 {
		panic("test field too long")
	}
	dst = append(dst, byte(len(f)))
	return append(dst, f...)
}

// echoHandler answers every request with a success echoing the packet's
// own type and id; mutations get a count, selects get tuples.
func echoHandler(tuples ...common.Tuple) stubHandler {
	return func(_ net.Conn, pkt common.RawPacket) []byte {
		switch pkt.Type {
		case common.RequestTypePing:
			return respPacket(pkt.Type, pkt.RequestID, nil)
		case common.RequestTypeSelect, common.RequestTypeCall:
			return respPacket(pkt.Type, pkt.RequestID, respTuples(tuples...))
		default:
			return respPacket(pkt.Type, pkt.RequestID, respCount(1))
		}
	}
}

// --------------------------------------------------------------------------
// Client helpers
// --------------------------------------------------------------------------

func testConfig(endpoint string, mode common.Mode) common.ClientConfig {
	return common.ClientConfig{
		Mode:          mode,
		TimeoutSecond: 5,
		Transport:     common.ClientTransportConfig{Endpoint: endpoint},
	}
}

func dialStub(t *testing.T, s *stubServer, mode common.Mode) *Connection {
	t.Helper()

	conn, err := Connect(testConfig(s.addr(), mode), tcp.NewTCPConnector(), codec.NewBoxCodec())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitClosed waits until conn has fully torn down.
func waitClosed(t *testing.T, conn *Connection) {
	t.Helper()
	select {
	case <-conn.readerDone:
	case <-time.After(5 * time.Second):
		t.Fatal("connection did not close in time")
	}
}
