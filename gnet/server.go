package gnet

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/hdt3213/minidis/interface/database"
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/lib/logger"
	"github.com/hdt3213/minidis/redis/connection"
	"github.com/panjf2000/gnet/v2"
)

// GnetServer serves the same command set as the goroutine-per-connection
// handler on top of gnet's event loop
type GnetServer struct {
	gnet.BuiltinEventEngine
	eng       gnet.Engine
	connected int32
	db        database.DB
}

func NewGnetServer(db database.DB) *GnetServer {
	return &GnetServer{
		db: db,
	}
}

// Run starts the event loop on the given address, blocking until the
// engine stops
func (s *GnetServer) Run(addr string) error {
	return gnet.Run(s, "tcp://"+addr, gnet.WithMulticore(true))
}

// Close stops the event engine
func (s *GnetServer) Close() {
	_ = s.eng.Stop(context.Background())
}

func (s *GnetServer) OnBoot(eng gnet.Engine) (action gnet.Action) {
	s.eng = eng
	return
}

func (s *GnetServer) OnShutdown(eng gnet.Engine) {
	s.db.Close()
}

func (s *GnetServer) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	client := connection.NewConn(c)
	c.SetContext(client)
	atomic.AddInt32(&s.connected, 1)
	return
}

func (s *GnetServer) OnClose(c gnet.Conn, err error) (action gnet.Action) {
	if err != nil {
		logger.Infof("error occurred on connection=%s, %v\n", c.RemoteAddr().String(), err)
	}
	atomic.AddInt32(&s.connected, -1)
	conn := c.Context().(redis.Connection)
	s.db.AfterClientClose(conn)
	return
}

func (s *GnetServer) OnTraffic(c gnet.Conn) (action gnet.Action) {
	conn := c.Context().(redis.Connection)
	for {
		buf, err := c.Peek(-1)
		if err != nil || len(buf) == 0 {
			return gnet.None
		}
		cmdLine, frameLen, err := Parse(buf)
		if err == ErrIncomplete {
			// keep the partial frame buffered until the rest arrives
			return gnet.None
		}
		if err != nil {
			logger.Infof("parse command line failed: %v", err)
			return gnet.Close
		}
		_, _ = c.Discard(frameLen)
		if len(cmdLine) == 0 {
			continue
		}
		cmdName := strings.ToLower(string(cmdLine[0]))
		if cmdName == "quit" && len(cmdLine) == 1 {
			return gnet.Close
		}
		result := s.db.Exec(conn, cmdLine)
		buffer := result.ToBytes()
		if len(buffer) > 0 {
			_, _ = c.Write(buffer)
		}
		if cmdName == "shutdown" && len(cmdLine) == 1 {
			// Exec already persisted the keyspace
			return gnet.Shutdown
		}
	}
}
