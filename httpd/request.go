package httpd

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	ErrUnknownRouteHeader = errors.New("unknown route header")
	ErrUnknownMethod      = errors.New("unknown method")
	ErrUnknownProtocol    = errors.New("unknown protocol")
	ErrHeaderTooLarge     = errors.New("request head too large")
)

type Method int

const (
	MethodGet Method = iota
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	}
	return "UNKNOWN"
}

type Protocol int

const (
	ProtocolHTTP10 Protocol = iota
	ProtocolHTTP11
)

func (p Protocol) String() string {
	switch p {
	case ProtocolHTTP10:
		return "HTTP/1.0"
	case ProtocolHTTP11:
		return "HTTP/1.1"
	}
	return "UNKNOWN"
}

// RequestHead is the request line of an accepted request.
type RequestHead struct {
	Method   Method
	URI      string
	Protocol Protocol
}

// ParseRequestHead parses a request line such as "GET / HTTP/1.1".
//
// The line is split on every single space, so it must contain exactly three tokens:
// "GET  / HTTP/1.1" (two spaces) is rejected as ErrUnknownRouteHeader.
func ParseRequestHead(line string) (RequestHead, error) {
	tokens := strings.Split(line, " ")
	if len(tokens) != 3 {
		return RequestHead{}, ErrUnknownRouteHeader
	}

	if tokens[0] != "GET" {
		return RequestHead{}, ErrUnknownMethod
	}

	var proto Protocol
	switch tokens[2] {
	case "HTTP/1.0":
		proto = ProtocolHTTP10
	case "HTTP/1.1":
		proto = ProtocolHTTP11
	default:
		return RequestHead{}, ErrUnknownProtocol
	}

	return RequestHead{Method: MethodGet, URI: tokens[1], Protocol: proto}, nil
}

// readRequestLines reads lines up to and including the first empty one, which is not
// returned. A peer closing the stream early ends the read with the lines seen so far.
func readRequestLines(bufr *bufio.Reader) ([]string, error) {
	var lines []string
	for {
		line, err := readLine(bufr)
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
		if len(line) == 0 {
			return lines, nil
		}
		lines = append(lines, string(line))
	}
}

// readLine returns one line without its "\n" or "\r\n" terminator, joining the
// fragments bufio hands back when the line is longer than its buffer.
func readLine(bufr *bufio.Reader) ([]byte, error) {
	p, isPrefix, err := bufr.ReadLine()
	if err != nil {
		return p, err
	}

	if isPrefix {
		// p points into bufr's buffer, which the next ReadLine overwrites
		p = append([]byte(nil), p...)
	}

	var l []byte
	for isPrefix {
		l, isPrefix, err = bufr.ReadLine()
		if err != nil {
			break
		}
		p = append(p, l...)
	}

	return p, err
}
