package gnet

import (
	"bufio"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/hdt3213/minidis/config"
	"github.com/hdt3213/minidis/database"
)

func TestListenAndServe(t *testing.T) {
	backup := config.Properties.DBFilename
	config.Properties.DBFilename = filepath.Join(t.TempDir(), "dump.rdb")
	t.Cleanup(func() {
		config.Properties.DBFilename = backup
	})

	// grab a free port
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	db := database.NewStandaloneServer()
	server := NewGnetServer(db)
	go server.Run(addr)
	time.Sleep(2 * time.Second)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	bufReader := bufio.NewReader(conn)

	_, err = conn.Write([]byte("PING\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	line, _, err := bufReader.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != "+PONG" {
		t.Error("get wrong response")
	}

	_, err = conn.Write([]byte("*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	line, _, err = bufReader.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != "+OK" {
		t.Error("get wrong response")
	}

	// a frame split across writes is buffered until complete
	_, err = conn.Write([]byte("*3\r\n$3\r\nSET\r\n$1\r\ns\r\n$5\r\nhe"))
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	_, err = conn.Write([]byte("llo\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	line, _, err = bufReader.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != "+OK" {
		t.Error("get wrong response")
	}
	_, err = conn.Write([]byte("GET s\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	line, _, err = bufReader.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != "$5" {
		t.Error("get wrong response")
	}
	line, _, err = bufReader.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != "hello" {
		t.Error("get wrong response")
	}

	conn.Close()
	server.Close()
}
