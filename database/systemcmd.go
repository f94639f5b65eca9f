package database

import (
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/redis/protocol"
)

// Ping the server
func Ping(c redis.Connection, args [][]byte) redis.Reply {
	if len(args) == 0 {
		return &protocol.PongReply{}
	} else if len(args) == 1 {
		return protocol.MakeStatusReply(string(args[0]))
	}
	return protocol.MakeArgNumErrReply("ping")
}
