package gnet

import (
	"bytes"
	"errors"
	"strconv"
)

// ErrIncomplete reports that the buffer does not yet hold a whole
// command frame. The caller leaves the inbound buffer untouched and
// retries when more data arrives.
var ErrIncomplete = errors.New("incomplete frame")

// Parse decodes one command from buf without consuming it, returning
// the arguments and the frame length in bytes. It accepts multi bulk
// requests ("*2\r\n$3\r\nGET\r\n$1\r\nk\r\n") as well as inline
// commands ("GET k\r\n"). Argument slices are copies, they stay valid
// after the buffer is discarded.
func Parse(buf []byte) ([][]byte, int, error) {
	line, pos, err := readLine(buf, 0)
	if err != nil {
		return nil, 0, err
	}
	if len(line) == 0 {
		return nil, pos, nil
	}
	if line[0] != '*' {
		return parseInline(line), pos, nil
	}
	argCount, err := strconv.Atoi(string(line[1:]))
	if err != nil || argCount < 0 {
		return nil, 0, errors.New("protocol error: illegal array header " + string(line))
	}
	args := make([][]byte, 0, argCount)
	for i := 0; i < argCount; i++ {
		var header []byte
		header, pos, err = readLine(buf, pos)
		if err != nil {
			return nil, 0, err
		}
		if len(header) < 2 || header[0] != '$' {
			return nil, 0, errors.New("protocol error: illegal bulk header " + string(header))
		}
		bulkLen, err := strconv.Atoi(string(header[1:]))
		if err != nil || bulkLen < 0 {
			return nil, 0, errors.New("protocol error: illegal bulk length " + string(header))
		}
		if len(buf) < pos+bulkLen+2 {
			return nil, 0, ErrIncomplete
		}
		if buf[pos+bulkLen] != '\r' || buf[pos+bulkLen+1] != '\n' {
			return nil, 0, errors.New("protocol error: bulk body ends without CRLF")
		}
		args = append(args, append([]byte(nil), buf[pos:pos+bulkLen]...))
		pos += bulkLen + 2
	}
	return args, pos, nil
}

// readLine scans for CRLF starting at pos, returning the line content
// and the offset just past the terminator
func readLine(buf []byte, pos int) ([]byte, int, error) {
	idx := bytes.IndexByte(buf[pos:], '\n')
	if idx < 0 {
		return nil, 0, ErrIncomplete
	}
	end := pos + idx
	if end == pos || buf[end-1] != '\r' {
		return nil, 0, errors.New("protocol error: line ends without CRLF")
	}
	return buf[pos : end-1], end + 1, nil
}

func parseInline(line []byte) [][]byte {
	args := make([][]byte, 0, 4)
	start := 0
	for i := 0; i <= len(line); i++ {
		if i == len(line) || line[i] == ' ' {
			if i > start {
				args = append(args, append([]byte(nil), line[start:i]...))
			}
			start = i + 1
		}
	}
	return args
}
