package database

import (
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/hdt3213/minidis/config"
	"github.com/hdt3213/minidis/lib/utils"
	"github.com/hdt3213/minidis/redis/connection"
	"github.com/hdt3213/minidis/redis/protocol"
	"github.com/hdt3213/minidis/redis/protocol/asserts"
)

func TestPing(t *testing.T) {
	server := NewStandaloneServer()
	c := &connection.FakeConn{}
	actual := server.Exec(c, utils.ToCmdLine("PING"))
	asserts.AssertStatusReply(t, actual, "PONG")
	actual = server.Exec(c, utils.ToCmdLine("PING", "hello"))
	asserts.AssertStatusReply(t, actual, "hello")
	actual = server.Exec(c, utils.ToCmdLine("PING", "a", "b"))
	asserts.AssertErrReply(t, actual, "ERR wrong number of arguments for 'ping' command")
}

func TestUnknownCommand(t *testing.T) {
	server := NewStandaloneServer()
	c := &connection.FakeConn{}
	actual := server.Exec(c, utils.ToCmdLine("NOSUCHCMD", "a"))
	asserts.AssertErrReply(t, actual, "ERR unknown command 'nosuchcmd'")
}

func TestSelect(t *testing.T) {
	server := NewStandaloneServer()
	c := &connection.FakeConn{}
	key := utils.RandString(10)

	// databases are created on demand and hold separate keyspaces
	actual := server.Exec(c, utils.ToCmdLine("SELECT", "3"))
	asserts.AssertStatusReply(t, actual, "OK")
	server.Exec(c, utils.ToCmdLine("SET", key, "v3"))

	server.Exec(c, utils.ToCmdLine("SELECT", "0"))
	actual = server.Exec(c, utils.ToCmdLine("GET", key))
	asserts.AssertNullBulk(t, actual)

	server.Exec(c, utils.ToCmdLine("SELECT", "3"))
	actual = server.Exec(c, utils.ToCmdLine("GET", key))
	asserts.AssertBulkReply(t, actual, "v3")

	actual = server.Exec(c, utils.ToCmdLine("SELECT", "a"))
	asserts.AssertErrReply(t, actual, "ERR invalid DB index")
	actual = server.Exec(c, utils.ToCmdLine("SELECT", "-1"))
	asserts.AssertErrReply(t, actual, "ERR invalid DB index")
}

func TestFlush(t *testing.T) {
	server := NewStandaloneServer()
	c := &connection.FakeConn{}
	server.Exec(c, utils.ToCmdLine("SET", "k0", "v"))
	server.Exec(c, utils.ToCmdLine("SELECT", "1"))
	server.Exec(c, utils.ToCmdLine("SET", "k1", "v"))

	// flushdb only clears the selected database
	actual := server.Exec(c, utils.ToCmdLine("FLUSHDB"))
	asserts.AssertStatusReply(t, actual, "OK")
	actual = server.Exec(c, utils.ToCmdLine("EXISTS", "k1"))
	asserts.AssertIntReply(t, actual, 0)
	server.Exec(c, utils.ToCmdLine("SELECT", "0"))
	actual = server.Exec(c, utils.ToCmdLine("EXISTS", "k0"))
	asserts.AssertIntReply(t, actual, 1)

	// flushall clears every database
	server.Exec(c, utils.ToCmdLine("FLUSHALL"))
	actual = server.Exec(c, utils.ToCmdLine("EXISTS", "k0"))
	asserts.AssertIntReply(t, actual, 0)
}

func TestQuitHasNoReply(t *testing.T) {
	server := NewStandaloneServer()
	c := &connection.FakeConn{}
	actual := server.Exec(c, utils.ToCmdLine("QUIT"))
	if _, ok := actual.(*protocol.NoReply); !ok {
		t.Errorf("expected no reply, actually %s", actual.ToBytes())
	}
}

// server level commands validate arity like table commands do
func TestServerCommandArity(t *testing.T) {
	useTempRDB(t)
	server := NewStandaloneServer()
	c := &connection.FakeConn{}
	for _, name := range []string{"save", "bgsave", "lastsave", "shutdown", "quit"} {
		actual := server.Exec(c, utils.ToCmdLine(name, "extra"))
		asserts.AssertErrReply(t, actual,
			"ERR wrong number of arguments for '"+name+"' command")
	}
	// the arity failure must not have saved anything
	if _, err := os.Stat(config.Properties.DBFilename); err == nil {
		t.Error("rdb file written by rejected command")
	}
}

// commands are atomic with respect to each other, concurrent increments
// must not lose updates
func TestConcurrentIncr(t *testing.T) {
	server := NewStandaloneServer()
	key := utils.RandString(10)
	clients := 2
	rounds := 1000

	var wg sync.WaitGroup
	wg.Add(clients)
	for i := 0; i < clients; i++ {
		go func() {
			defer wg.Done()
			c := &connection.FakeConn{}
			for j := 0; j < rounds; j++ {
				server.Exec(c, utils.ToCmdLine("INCR", key))
			}
		}()
	}
	wg.Wait()

	c := &connection.FakeConn{}
	actual := server.Exec(c, utils.ToCmdLine("GET", key))
	asserts.AssertBulkReply(t, actual, strconv.Itoa(clients*rounds))
}
