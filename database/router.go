package database

import "strings"

var cmdTable = make(map[string]*command)

type command struct {
	name     string
	executor ExecFunc
	// arity means allowed number of cmdArgs, arity < 0 means len(args) >= -arity.
	// for example: the arity of `get` is 2, `del` is -2
	arity int
}

// registerCommand registers a normal command, which only reads or modifies
// keys of the connection's selected database
func registerCommand(name string, executor ExecFunc, arity int) *command {
	name = strings.ToLower(name)
	cmd := &command{
		name:     name,
		executor: executor,
		arity:    arity,
	}
	cmdTable[name] = cmd
	return cmd
}
