package database

import (
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/rdb/core"
)

// CmdLine is alias for [][]byte, represents a command line
type CmdLine = [][]byte

// DB is the interface for a redis style storage engine
type DB interface {
	Exec(client redis.Connection, cmdLine [][]byte) redis.Reply
	AfterClientClose(c redis.Connection)
	Close()
	LoadRDB(dec *core.Decoder) error
}

// DataEntity stores data bound to a key, which is either a binary safe
// string ([]byte) or a list (*list.LinkedList)
type DataEntity struct {
	Data interface{}
}
