package database

import (
	"strconv"

	"github.com/hdt3213/minidis/interface/database"
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/redis/protocol"
)

func (db *DB) getAsString(key string) ([]byte, protocol.ErrorReply) {
	entity, ok := db.GetEntity(key)
	if !ok {
		return nil, nil
	}
	bytes, ok := entity.Data.([]byte)
	if !ok {
		return nil, &protocol.WrongTypeErrReply{}
	}
	return bytes, nil
}

// execGet returns string value bound to the given key
func execGet(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	bytes, err := db.getAsString(key)
	if err != nil {
		return err
	}
	if bytes == nil {
		return protocol.MakeNullBulkReply()
	}
	return protocol.MakeBulkReply(bytes)
}

// execSet sets string value to the given key, overwriting any previous value
func execSet(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	value := args[1]
	db.PutEntity(key, &database.DataEntity{Data: value})
	return protocol.MakeOkReply()
}

// execSetNX sets string if key not exists
func execSetNX(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	value := args[1]
	result := db.PutIfAbsent(key, &database.DataEntity{Data: value})
	return protocol.MakeIntReply(int64(result))
}

// currentInt reads the key as an integer for the incr family.
// Any missing key, non string value or non numeric string counts as 0.
func (db *DB) currentInt(key string) int64 {
	entity, ok := db.GetEntity(key)
	if !ok {
		return 0
	}
	bytes, ok := entity.Data.([]byte)
	if !ok {
		return 0
	}
	val, err := strconv.ParseInt(string(bytes), 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// incrBy adds delta to the key's integer value. This never fails:
// unparsable values count as zero and any previous value, including a
// list, is overwritten with the result.
func incrBy(db *DB, key string, delta int64) redis.Reply {
	result := db.currentInt(key) + delta
	db.PutEntity(key, &database.DataEntity{
		Data: []byte(strconv.FormatInt(result, 10)),
	})
	return protocol.MakeIntReply(result)
}

// execIncr increments the integer value of a key by one
func execIncr(db *DB, args [][]byte) redis.Reply {
	return incrBy(db, string(args[0]), 1)
}

// execIncrBy increments the integer value of a key by given amount
func execIncrBy(db *DB, args [][]byte) redis.Reply {
	delta, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		delta = 0
	}
	return incrBy(db, string(args[0]), delta)
}

// execDecr decrements the integer value of a key by one
func execDecr(db *DB, args [][]byte) redis.Reply {
	return incrBy(db, string(args[0]), -1)
}

// execDecrBy decrements the integer value of a key by given amount
func execDecrBy(db *DB, args [][]byte) redis.Reply {
	delta, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		delta = 0
	}
	return incrBy(db, string(args[0]), -delta)
}

func init() {
	registerCommand("Set", execSet, 3)
	registerCommand("SetNX", execSetNX, 3)
	registerCommand("Get", execGet, 2)
	registerCommand("Incr", execIncr, 2)
	registerCommand("IncrBy", execIncrBy, 3)
	registerCommand("Decr", execDecr, 2)
	registerCommand("DecrBy", execDecrBy, 3)
}
