package database

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hdt3213/minidis/config"
	"github.com/hdt3213/minidis/datastruct/list"
	"github.com/hdt3213/minidis/interface/database"
	"github.com/hdt3213/minidis/interface/redis"
	"github.com/hdt3213/minidis/lib/logger"
	"github.com/hdt3213/minidis/redis/protocol"
	"github.com/hdt3213/rdb/core"
	rdbenc "github.com/hdt3213/rdb/encoder"
	rdb "github.com/hdt3213/rdb/parser"
)

// snapshot is an immutable copy of the keyspace, safe to encode outside
// the server lock
type snapshot struct {
	index    int
	entities map[string]*database.DataEntity
}

// takeSnapshot copies every database. Callers must hold server.mu.
// String values are immutable after insertion so sharing them with the
// live keyspace is safe, list nodes are copied.
func (server *Server) takeSnapshot() []*snapshot {
	indexes := make([]int, 0, len(server.dbs))
	for i := range server.dbs {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	result := make([]*snapshot, 0, len(indexes))
	for _, i := range indexes {
		db := server.dbs[i]
		if db.Len() == 0 {
			continue
		}
		shot := &snapshot{
			index:    i,
			entities: make(map[string]*database.DataEntity, db.Len()),
		}
		db.ForEach(func(key string, entity *database.DataEntity) bool {
			if lst, ok := entity.Data.(*list.LinkedList); ok {
				entity = &database.DataEntity{Data: list.Make(lst.Range(0, lst.Len())...)}
			}
			shot.entities[key] = entity
			return true
		})
		result = append(result, shot)
	}
	return result
}

// save dumps all databases to the configured rdb file. Callers must
// hold server.mu.
func (server *Server) save() error {
	err := server.dumpSnapshots(server.takeSnapshot())
	if err != nil {
		return err
	}
	atomic.StoreInt64(&server.lastSave, time.Now().Unix())
	return nil
}

// bgSave dumps all databases in a background goroutine
func (server *Server) bgSave() redis.Reply {
	shots := server.takeSnapshot()
	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Warnf("error occurs during background save: %v", err)
			}
		}()
		if err := server.dumpSnapshots(shots); err != nil {
			logger.Error("background save failed: " + err.Error())
			return
		}
		atomic.StoreInt64(&server.lastSave, time.Now().Unix())
	}()
	return protocol.MakeStatusReply("Background saving started")
}

// dumpSnapshots encodes the given snapshots into a temp file, then
// atomically replaces the rdb file
func (server *Server) dumpSnapshots(shots []*snapshot) error {
	filename := config.Properties.DBFilename
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), "*.rdb")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()
	err = writeSnapshots(tmpFile, shots)
	if err != nil {
		_ = tmpFile.Close()
		return err
	}
	err = tmpFile.Close()
	if err != nil {
		return err
	}
	return os.Rename(tmpFile.Name(), filename)
}

func writeSnapshots(file *os.File, shots []*snapshot) error {
	encoder := rdbenc.NewEncoder(file).EnableCompress()
	err := encoder.WriteHeader()
	if err != nil {
		return err
	}
	auxMap := map[string]string{
		"redis-ver":  "6.0.0",
		"redis-bits": "64",
		"ctime":      strconv.FormatInt(time.Now().Unix(), 10),
	}
	for k, v := range auxMap {
		err = encoder.WriteAux(k, v)
		if err != nil {
			return err
		}
	}
	for _, shot := range shots {
		err = encoder.WriteDBHeader(uint(shot.index), uint64(len(shot.entities)), 0)
		if err != nil {
			return err
		}
		for key, entity := range shot.entities {
			switch obj := entity.Data.(type) {
			case []byte:
				err = encoder.WriteStringObject(key, obj)
			case *list.LinkedList:
				err = encoder.WriteListObject(key, obj.Range(0, obj.Len()))
			}
			if err != nil {
				return err
			}
		}
	}
	return encoder.WriteEnd()
}

func (server *Server) loadRdbFile(filename string) error {
	rdbFile, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = rdbFile.Close()
	}()
	return server.LoadRDB(rdb.NewDecoder(rdbFile))
}

// LoadRDB imports data from an rdb stream into the keyspace
func (server *Server) LoadRDB(dec *core.Decoder) error {
	return dec.Parse(func(o rdb.RedisObject) bool {
		db := server.mustSelectDB(o.GetDBIndex())
		switch o.GetType() {
		case rdb.StringType:
			str := o.(*rdb.StringObject)
			db.PutEntity(o.GetKey(), &database.DataEntity{Data: str.Value})
		case rdb.ListType:
			listObj := o.(*rdb.ListObject)
			db.PutEntity(o.GetKey(), &database.DataEntity{
				Data: list.Make(listObj.Values...),
			})
		}
		return true
	})
}
