package database

import (
	"github.com/hdt3213/minidis/datastruct/list"
	"github.com/hdt3213/minidis/interface/database"
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/lib/match"
	"github.com/hdt3213/minidis/redis/protocol"
)

// execDel removes the given keys from db
func execDel(db *DB, args [][]byte) redis.Reply {
	keys := make([]string, len(args))
	for i, v := range args {
		keys[i] = string(v)
	}
	deleted := db.Removes(keys...)
	return protocol.MakeIntReply(int64(deleted))
}

// execExists counts how many of the given keys exist
func execExists(db *DB, args [][]byte) redis.Reply {
	result := int64(0)
	for _, arg := range args {
		key := string(arg)
		_, exists := db.GetEntity(key)
		if exists {
			result++
		}
	}
	return protocol.MakeIntReply(result)
}

// execType returns the type of entity stored at key, including: string, list, none
func execType(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	entity, exists := db.GetEntity(key)
	if !exists {
		return protocol.MakeStatusReply("none")
	}
	switch entity.Data.(type) {
	case []byte:
		return protocol.MakeStatusReply("string")
	case *list.LinkedList:
		return protocol.MakeStatusReply("list")
	}
	return &protocol.UnknownErrReply{}
}

// execKeys returns all keys matching the given glob style pattern
func execKeys(db *DB, args [][]byte) redis.Reply {
	pattern := match.CompilePattern(string(args[0]))
	result := make([][]byte, 0)
	db.ForEach(func(key string, entity *database.DataEntity) bool {
		if pattern.IsMatch(key) {
			result = append(result, []byte(key))
		}
		return true
	})
	return protocol.MakeMultiBulkReply(result)
}

func init() {
	registerCommand("Del", execDel, -2)
	registerCommand("Exists", execExists, -2)
	registerCommand("Type", execType, 2)
	registerCommand("Keys", execKeys, 2)
}
