package database

import (
	"strconv"

	"github.com/hdt3213/minidis/datastruct/list"
	"github.com/hdt3213/minidis/interface/database"
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/redis/protocol"
)

func (db *DB) getAsList(key string) (*list.LinkedList, protocol.ErrorReply) {
	entity, ok := db.GetEntity(key)
	if !ok {
		return nil, nil
	}
	lst, ok := entity.Data.(*list.LinkedList)
	if !ok {
		return nil, &protocol.WrongTypeErrReply{}
	}
	return lst, nil
}

func (db *DB) getOrInitList(key string) (*list.LinkedList, protocol.ErrorReply) {
	lst, errReply := db.getAsList(key)
	if errReply != nil {
		return nil, errReply
	}
	if lst == nil {
		lst = list.Make()
		db.PutEntity(key, &database.DataEntity{Data: lst})
	}
	return lst, nil
}

// execLPush prepends value to the list
func execLPush(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	lst, errReply := db.getOrInitList(key)
	if errReply != nil {
		return errReply
	}
	lst.AddFirst(args[1])
	return protocol.MakeOkReply()
}

// execRPush appends value to the list
func execRPush(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	lst, errReply := db.getOrInitList(key)
	if errReply != nil {
		return errReply
	}
	lst.Add(args[1])
	return protocol.MakeOkReply()
}

// execLPop removes and returns the head of the list
func execLPop(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	lst, errReply := db.getAsList(key)
	if errReply != nil {
		return errReply
	}
	if lst == nil || lst.Len() == 0 {
		return protocol.MakeNullBulkReply()
	}
	return protocol.MakeBulkReply(lst.RemoveFirst())
}

// execRPop removes and returns the tail of the list
func execRPop(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	lst, errReply := db.getAsList(key)
	if errReply != nil {
		return errReply
	}
	if lst == nil || lst.Len() == 0 {
		return protocol.MakeNullBulkReply()
	}
	return protocol.MakeBulkReply(lst.RemoveLast())
}

// execLLen returns the length of the list
func execLLen(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	lst, errReply := db.getAsList(key)
	if errReply != nil {
		return errReply
	}
	if lst == nil {
		return protocol.MakeIntReply(0)
	}
	return protocol.MakeIntReply(int64(lst.Len()))
}

// execLRange gets elements of list in the given range.
// Indexes follow slice conventions rather than redis ones: `stop` is
// exclusive, negative indexes count back from the tail and the special
// pair (0, -1) covers the whole list.
func execLRange(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	start, err := strconv.Atoi(string(args[1]))
	if err != nil {
		return protocol.MakeErrReply("ERR value is not an integer or out of range")
	}
	stop, err := strconv.Atoi(string(args[2]))
	if err != nil {
		return protocol.MakeErrReply("ERR value is not an integer or out of range")
	}
	lst, errReply := db.getAsList(key)
	if errReply != nil {
		return errReply
	}
	if lst == nil {
		return protocol.MakeNullMultiBulkReply()
	}
	lo, hi := sliceBounds(start, stop, lst.Len())
	return protocol.MakeMultiBulkReply(lst.Range(lo, hi))
}

// sliceBounds converts (start, stop) to valid offsets into a list of
// the given size
func sliceBounds(start int, stop int, size int) (int, int) {
	if start == 0 && stop == -1 {
		return 0, size
	}
	if start < 0 {
		start += size
	}
	if start < 0 {
		start = 0
	}
	if start > size {
		start = size
	}
	if stop < 0 {
		stop += size
	}
	if stop < start {
		stop = start
	}
	if stop > size {
		stop = size
	}
	return start, stop
}

func init() {
	registerCommand("LPush", execLPush, 3)
	registerCommand("RPush", execRPush, 3)
	registerCommand("LPop", execLPop, 2)
	registerCommand("RPop", execRPop, 2)
	registerCommand("LLen", execLLen, 2)
	registerCommand("LRange", execLRange, 4)
}
