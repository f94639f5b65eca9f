package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	src := "bind 127.0.0.1\n" +
		"port 7399\n" +
		"# port 9999\n" +
		"maxclients 128\n" +
		"usegnet yes\n"
	config := parse(strings.NewReader(src))
	if config.Bind != "127.0.0.1" {
		t.Errorf("got bind %s", config.Bind)
	}
	if config.Port != 7399 {
		t.Errorf("got port %d", config.Port)
	}
	if config.MaxClients != 128 {
		t.Errorf("got maxclients %d", config.MaxClients)
	}
	if !config.UseGnet {
		t.Error("expected usegnet to be enabled")
	}
	// missing keys keep their defaults
	if config.DBFilename != "dump.rdb" {
		t.Errorf("got dbfilename %s", config.DBFilename)
	}
}

func TestParseEmpty(t *testing.T) {
	config := parse(strings.NewReader(""))
	if config.Bind != "0.0.0.0" || config.Port != 6399 {
		t.Errorf("defaults not applied: %s:%d", config.Bind, config.Port)
	}
}
