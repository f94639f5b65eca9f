package database

import (
	"strconv"
	"testing"

	"github.com/hdt3213/minidis/lib/utils"
	"github.com/hdt3213/minidis/redis/protocol"
	"github.com/hdt3213/minidis/redis/protocol/asserts"
)

var testDB = makeDB()

func TestSet(t *testing.T) {
	testDB.Flush()
	key := utils.RandString(10)
	value := utils.RandString(10)

	actual := testDB.Exec(utils.ToCmdLine("SET", key, value))
	asserts.AssertStatusReply(t, actual, "OK")
	actual = testDB.Exec(utils.ToCmdLine("GET", key))
	asserts.AssertBulkReply(t, actual, value)

	// overwrite
	value2 := utils.RandString(12)
	testDB.Exec(utils.ToCmdLine("SET", key, value2))
	actual = testDB.Exec(utils.ToCmdLine("GET", key))
	asserts.AssertBulkReply(t, actual, value2)
}

func TestSetEmpty(t *testing.T) {
	testDB.Flush()
	key := utils.RandString(10)
	testDB.Exec(utils.ToCmdLine("SET", key, ""))
	actual := testDB.Exec(utils.ToCmdLine("GET", key))
	bulkReply, ok := actual.(*protocol.BulkReply)
	if !ok {
		t.Errorf("expected bulk protocol, actually %s", actual.ToBytes())
		return
	}
	if !(bulkReply.Arg != nil && len(bulkReply.Arg) == 0) {
		t.Error("illegal empty string")
	}
}

func TestSetNX(t *testing.T) {
	testDB.Flush()
	key := utils.RandString(10)
	value := utils.RandString(10)

	actual := testDB.Exec(utils.ToCmdLine("SETNX", key, value))
	asserts.AssertIntReply(t, actual, 1)
	actual = testDB.Exec(utils.ToCmdLine("SETNX", key, utils.RandString(10)))
	asserts.AssertIntReply(t, actual, 0)
	actual = testDB.Exec(utils.ToCmdLine("GET", key))
	asserts.AssertBulkReply(t, actual, value)
}

func TestGetMissing(t *testing.T) {
	testDB.Flush()
	actual := testDB.Exec(utils.ToCmdLine("GET", utils.RandString(10)))
	asserts.AssertNullBulk(t, actual)
}

func TestGetWrongType(t *testing.T) {
	testDB.Flush()
	key := utils.RandString(10)
	testDB.Exec(utils.ToCmdLine("RPUSH", key, "a"))
	actual := testDB.Exec(utils.ToCmdLine("GET", key))
	asserts.AssertErrReply(t, actual, "ERR Operation against a key holding the wrong kind of value")
}

func TestIncr(t *testing.T) {
	testDB.Flush()
	key := utils.RandString(10)
	size := 10
	for i := 0; i < size; i++ {
		testDB.Exec(utils.ToCmdLine("INCR", key))
		actual := testDB.Exec(utils.ToCmdLine("GET", key))
		asserts.AssertBulkReply(t, actual, strconv.Itoa(i+1))
	}
	for i := 0; i < size; i++ {
		testDB.Exec(utils.ToCmdLine("INCRBY", key, "-1"))
		actual := testDB.Exec(utils.ToCmdLine("GET", key))
		asserts.AssertBulkReply(t, actual, strconv.Itoa(size-i-1))
	}

	testDB.Flush()
	key = utils.RandString(10)
	for i := 0; i < size; i++ {
		actual := testDB.Exec(utils.ToCmdLine("INCRBY", key, "1"))
		asserts.AssertIntReply(t, actual, i+1)
	}
	testDB.Exec(utils.ToCmdLine("SET", key, "0"))
	for i := 0; i < size; i++ {
		actual := testDB.Exec(utils.ToCmdLine("DECRBY", key, "1"))
		asserts.AssertIntReply(t, actual, -i-1)
	}
	actual := testDB.Exec(utils.ToCmdLine("DECR", key))
	asserts.AssertIntReply(t, actual, -size-1)
}

// the incr family never reports an error: anything that cannot be read
// as an integer counts as zero
func TestIncrNonNumeric(t *testing.T) {
	testDB.Flush()
	key := utils.RandString(10)

	testDB.Exec(utils.ToCmdLine("SET", key, "hello"))
	actual := testDB.Exec(utils.ToCmdLine("INCR", key))
	asserts.AssertIntReply(t, actual, 1)
	actual = testDB.Exec(utils.ToCmdLine("GET", key))
	asserts.AssertBulkReply(t, actual, "1")

	// malformed delta counts as zero
	testDB.Exec(utils.ToCmdLine("SET", key, "5"))
	actual = testDB.Exec(utils.ToCmdLine("INCRBY", key, "abc"))
	asserts.AssertIntReply(t, actual, 5)
}

// incr overwrites a list value instead of failing
func TestIncrOverwritesList(t *testing.T) {
	testDB.Flush()
	key := utils.RandString(10)
	testDB.Exec(utils.ToCmdLine("RPUSH", key, "a"))
	actual := testDB.Exec(utils.ToCmdLine("INCR", key))
	asserts.AssertIntReply(t, actual, 1)
	actual = testDB.Exec(utils.ToCmdLine("TYPE", key))
	asserts.AssertStatusReply(t, actual, "string")
}
