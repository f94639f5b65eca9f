package server

/*
 * A tcp.Handler implements redis protocol
 */

import (
	"context"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/hdt3213/minidis/interface/database"
	"github.com/hdt3213/minidis/lib/logger"
	"github.com/hdt3213/minidis/lib/sync/atomic"
	"github.com/hdt3213/minidis/redis/connection"
	"github.com/hdt3213/minidis/redis/parser"
	"github.com/hdt3213/minidis/redis/protocol"
)

var (
	unknownErrReplyBytes = []byte("-ERR unknown\r\n")
)

// Handler implements tcp.Handler and serves as a redis server
type Handler struct {
	activeConn sync.Map // *connection.Connection -> placeholder
	db         database.DB
	closing    atomic.Boolean // refusing new client and new request

	// closeChan receives a message when SHUTDOWN asks the whole
	// process to stop
	closeChan chan<- struct{}
}

// MakeHandler creates a Handler instance serving the given storage engine
func MakeHandler(db database.DB, closeChan chan<- struct{}) *Handler {
	return &Handler{
		db:        db,
		closeChan: closeChan,
	}
}

func (h *Handler) closeClient(client *connection.Connection) {
	_ = client.Close()
	h.db.AfterClientClose(client)
	h.activeConn.Delete(client)
}

// Handle receives and executes redis commands
func (h *Handler) Handle(ctx context.Context, conn net.Conn) {
	if h.closing.Get() {
		// closing handler refuse new connection
		_ = conn.Close()
		return
	}

	client := connection.NewConn(conn)
	h.activeConn.Store(client, struct{}{})

	ch := parser.ParseStream(conn)
	for payload := range ch {
		if payload.Err != nil {
			if payload.Err == io.EOF ||
				payload.Err == io.ErrUnexpectedEOF ||
				strings.Contains(payload.Err.Error(), "use of closed network connection") {
				// connection closed
				h.closeClient(client)
				logger.Info("connection closed: " + client.RemoteAddr())
				return
			}
			// protocol err
			errReply := protocol.MakeErrReply(payload.Err.Error())
			err := client.Write(errReply.ToBytes())
			if err != nil {
				h.closeClient(client)
				logger.Info("connection closed: " + client.RemoteAddr())
				return
			}
			continue
		}
		if payload.Data == nil {
			logger.Error("empty payload")
			continue
		}
		r, ok := payload.Data.(*protocol.MultiBulkReply)
		if !ok {
			logger.Error("require multi bulk protocol")
			continue
		}
		if len(r.Args) == 0 {
			continue
		}
		cmdName := strings.ToLower(string(r.Args[0]))
		if cmdName == "quit" && len(r.Args) == 1 {
			// close without a goodbye message
			h.closeClient(client)
			logger.Info("connection closed: " + client.RemoteAddr())
			return
		}
		result := h.db.Exec(client, r.Args)
		if result != nil {
			_ = client.Write(result.ToBytes())
		} else {
			_ = client.Write(unknownErrReplyBytes)
		}
		if cmdName == "shutdown" && len(r.Args) == 1 {
			// the engine persists inside Exec, here we stop the process
			select {
			case h.closeChan <- struct{}{}:
			default:
			}
			return
		}
	}
}

// Close stops handler
func (h *Handler) Close() error {
	logger.Info("handler shutting down...")
	h.closing.Set(true)
	h.activeConn.Range(func(key interface{}, val interface{}) bool {
		client := key.(*connection.Connection)
		_ = client.Close()
		return true
	})
	h.db.Close()
	return nil
}
