// Package database is a memory database with redis compatible interface
package database

import (
	"strings"

	"github.com/hdt3213/minidis/datastruct/dict"
	"github.com/hdt3213/minidis/interface/database"
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/redis/protocol"
)

// DB stores data and execute user's commands
type DB struct {
	index int
	// key -> *database.DataEntity
	data *dict.SimpleDict
}

// ExecFunc is interface for command executor
// args don't include cmd line
type ExecFunc func(db *DB, args [][]byte) redis.Reply

// CmdLine is alias for [][]byte, represents a command line
type CmdLine = [][]byte

// makeDB create DB instance
func makeDB() *DB {
	return &DB{
		data: dict.MakeSimple(),
	}
}

// Exec executes a normal command within one database.
// The owning Server serializes calls, no locking happens here.
func (db *DB) Exec(cmdLine [][]byte) redis.Reply {
	cmdName := strings.ToLower(string(cmdLine[0]))
	cmd, ok := cmdTable[cmdName]
	if !ok {
		return protocol.MakeErrReply("ERR unknown command '" + cmdName + "'")
	}
	if !validateArity(cmd.arity, cmdLine) {
		return protocol.MakeArgNumErrReply(cmdName)
	}
	return cmd.executor(db, cmdLine[1:])
}

func validateArity(arity int, cmdArgs [][]byte) bool {
	argNum := len(cmdArgs)
	if arity >= 0 {
		return argNum == arity
	}
	return argNum >= -arity
}

/* ---- Data Access ----- */

// GetEntity returns DataEntity bind to given key
func (db *DB) GetEntity(key string) (*database.DataEntity, bool) {
	raw, ok := db.data.Get(key)
	if !ok {
		return nil, false
	}
	entity, _ := raw.(*database.DataEntity)
	return entity, true
}

// PutEntity a DataEntity into DB
func (db *DB) PutEntity(key string, entity *database.DataEntity) int {
	return db.data.Put(key, entity)
}

// PutIfAbsent insert an DataEntity only if the key not exists
func (db *DB) PutIfAbsent(key string, entity *database.DataEntity) int {
	return db.data.PutIfAbsent(key, entity)
}

// Remove the given key from db
func (db *DB) Remove(key string) int {
	return db.data.Remove(key)
}

// Removes the given keys from db
func (db *DB) Removes(keys ...string) (deleted int) {
	for _, key := range keys {
		deleted += db.data.Remove(key)
	}
	return deleted
}

// Flush cleans database
func (db *DB) Flush() {
	db.data.Clear()
}

// ForEach traverses all the keys in the database
func (db *DB) ForEach(cb func(key string, entity *database.DataEntity) bool) {
	db.data.ForEach(func(key string, raw interface{}) bool {
		entity, _ := raw.(*database.DataEntity)
		return cb(key, entity)
	})
}

// Len returns the number of keys in the database
func (db *DB) Len() int {
	return db.data.Len()
}
