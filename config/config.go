package config

import (
	"bufio"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/hdt3213/minidis/lib/logger"
)

const DefaultConfPath = "redis.conf"

// Properties holds global config properties
var Properties *ServerProperties

// ServerProperties defines global config properties
type ServerProperties struct {
	Bind       string `cfg:"bind"`
	Port       int    `cfg:"port"`
	MaxClients int    `cfg:"maxclients"`
	DBFilename string `cfg:"dbfilename"`
	UseGnet    bool   `cfg:"usegnet"`
}

func defaultProperties() *ServerProperties {
	return &ServerProperties{
		Bind:       "0.0.0.0",
		Port:       6399,
		MaxClients: 1000,
		DBFilename: "dump.rdb",
	}
}

func init() {
	Properties = defaultProperties()
}

// parse fills defaults with values read from the config source, so
// properties missing from the file keep their default
func parse(src io.Reader) *ServerProperties {
	config := defaultProperties()

	// read config file
	rawMap := make(map[string]string)
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " ")
		if pivot > 0 && pivot < len(line)-1 { // separator found
			key := line[0:pivot]
			value := strings.Trim(line[pivot+1:], " ")
			rawMap[strings.ToLower(key)] = value
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal(err)
	}

	// parse format
	t := reflect.TypeOf(config)
	v := reflect.ValueOf(config)
	n := t.Elem().NumField()
	for i := 0; i < n; i++ {
		field := t.Elem().Field(i)
		fieldVal := v.Elem().Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok {
			key = field.Name
		}
		value, ok := rawMap[strings.ToLower(key)]
		if ok {
			// fill config
			switch field.Type.Kind() {
			case reflect.String:
				fieldVal.SetString(value)
			case reflect.Int:
				intValue, err := strconv.ParseInt(value, 10, 64)
				if err == nil {
					fieldVal.SetInt(intValue)
				}
			case reflect.Bool:
				fieldVal.SetBool(toBool(value))
			}
		}
	}
	return config
}

// Setup read config file and store properties into Properties
func Setup(configFilename string) {
	if configFilename == "" {
		if !defaultConfigFileExists() {
			return
		}
		configFilename = DefaultConfPath
	}
	file, err := os.Open(configFilename)
	if err != nil {
		panic(err)
	}
	defer file.Close()
	Properties = parse(file)
}

func defaultConfigFileExists() bool {
	info, err := os.Stat(DefaultConfPath)
	return err == nil && !info.IsDir()
}

func toBool(s string) bool {
	ls := strings.ToLower(s)
	switch ls {
	case "true", "yes", "t", "y":
		return true
	default:
		return false
	}
}
