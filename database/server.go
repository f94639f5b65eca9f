package database

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hdt3213/minidis/config"
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/lib/logger"
	"github.com/hdt3213/minidis/redis/protocol"
)

// Server is a redis-server with full capabilities including multiple
// databases and persistence. Databases are created on first SELECT.
type Server struct {
	// serializes command execution, commands are atomic with respect
	// to each other
	mu  sync.Mutex
	dbs map[int]*DB

	// unix timestamp of the last successful save
	lastSave int64
}

// NewStandaloneServer creates a standalone redis server
func NewStandaloneServer() *Server {
	server := &Server{
		dbs: map[int]*DB{
			0: makeDB(),
		},
	}
	filename := config.Properties.DBFilename
	if fileExists(filename) {
		err := server.loadRdbFile(filename)
		if err != nil {
			logger.Error("load rdb file failed: " + err.Error())
		}
	}
	return server
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

// Exec executes command
// parameter `cmdLine` contains command and its arguments, such as: "set key value"
func (server *Server) Exec(c redis.Connection, cmdLine [][]byte) (result redis.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logger.Warnf("error occurs: %v", err)
			result = &protocol.UnknownErrReply{}
		}
	}()

	server.mu.Lock()
	defer server.mu.Unlock()

	cmdName := strings.ToLower(string(cmdLine[0]))
	switch cmdName {
	case "ping":
		result = Ping(c, cmdLine[1:])
	case "select":
		if len(cmdLine) != 2 {
			result = protocol.MakeArgNumErrReply("select")
		} else {
			result = execSelect(server, c, cmdLine[1:])
		}
	case "flushdb":
		if len(cmdLine) != 1 {
			result = protocol.MakeArgNumErrReply("flushdb")
		} else {
			server.mustSelectDB(c.GetDBIndex()).Flush()
			result = protocol.MakeOkReply()
		}
	case "flushall":
		if len(cmdLine) != 1 {
			result = protocol.MakeArgNumErrReply("flushall")
		} else {
			server.flushAll()
			result = protocol.MakeOkReply()
		}
	case "save":
		if len(cmdLine) != 1 {
			result = protocol.MakeArgNumErrReply("save")
		} else if err := server.save(); err != nil {
			result = protocol.MakeErrReply("ERR " + err.Error())
		} else {
			result = protocol.MakeOkReply()
		}
	case "bgsave":
		if len(cmdLine) != 1 {
			result = protocol.MakeArgNumErrReply("bgsave")
		} else {
			result = server.bgSave()
		}
	case "lastsave":
		if len(cmdLine) != 1 {
			result = protocol.MakeArgNumErrReply("lastsave")
		} else {
			result = protocol.MakeIntReply(atomic.LoadInt64(&server.lastSave))
		}
	case "shutdown":
		// the connection handler halts the process after the reply
		if len(cmdLine) != 1 {
			result = protocol.MakeArgNumErrReply("shutdown")
		} else {
			if err := server.save(); err != nil {
				logger.Error("save before shutdown failed: " + err.Error())
			}
			result = protocol.MakeOkReply()
		}
	case "quit":
		// the connection handler closes the connection, nothing is sent
		if len(cmdLine) != 1 {
			result = protocol.MakeArgNumErrReply("quit")
		} else {
			result = &protocol.NoReply{}
		}
	default:
		db := server.mustSelectDB(c.GetDBIndex())
		result = db.Exec(cmdLine)
	}

	server.audit(c, cmdLine, result)
	return result
}

// audit writes one log line per executed command, in the manner of an
// access log
func (server *Server) audit(c redis.Connection, cmdLine [][]byte, result redis.Reply) {
	who := "SERVER"
	if c != nil && c.RemoteAddr() != "" {
		who = c.RemoteAddr()
	}
	fields := make([]string, len(cmdLine))
	for i, arg := range cmdLine {
		fields[i] = string(arg)
	}
	outcome := ""
	if result != nil {
		bytes := result.ToBytes()
		if i := strings.IndexByte(string(bytes), '\r'); i > 0 {
			outcome = string(bytes[:i])
		}
	}
	logger.Debugf("%s: %s -> %s", who, strings.Join(fields, " "), outcome)
}

// mustSelectDB returns the database with the given index, creating it
// on first use. Callers must hold server.mu.
func (server *Server) mustSelectDB(dbIndex int) *DB {
	db, ok := server.dbs[dbIndex]
	if !ok {
		db = makeDB()
		db.index = dbIndex
		server.dbs[dbIndex] = db
	}
	return db
}

func execSelect(server *Server, c redis.Connection, args [][]byte) redis.Reply {
	dbIndex, err := strconv.Atoi(string(args[0]))
	if err != nil || dbIndex < 0 {
		return protocol.MakeErrReply("ERR invalid DB index")
	}
	server.mustSelectDB(dbIndex)
	c.SelectDB(dbIndex)
	return protocol.MakeOkReply()
}

func (server *Server) flushAll() {
	for _, db := range server.dbs {
		db.Flush()
	}
}

// AfterClientClose does some clean after client close connection
func (server *Server) AfterClientClose(c redis.Connection) {
	// connections hold no server side state beyond the selected db index
}

// Close saves data and graceful shutdown database
func (server *Server) Close() {
	server.mu.Lock()
	defer server.mu.Unlock()
	if err := server.save(); err != nil {
		logger.Error("save on close failed: " + err.Error())
	}
}
