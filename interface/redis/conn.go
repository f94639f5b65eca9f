package redis

// Connection represents a connection with a redis client
type Connection interface {
	Write([]byte) error
	RemoteAddr() string

	// used for multi database
	GetDBIndex() int
	SelectDB(int)
}
