package httpd

import (
	"bufio"
	"strconv"
)

// Status selects the status line of a response.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
)

// StatusLine returns the full status line, without its terminator.
func (s Status) StatusLine() string {
	switch s {
	case StatusOK:
		return "HTTP/1.1 200 OK"
	default:
		return "HTTP/1.1 404 NOT FOUND"
	}
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	default:
		return "NOT FOUND"
	}
}

// BuildResponse renders a complete response. The header is written as
// "Content-Length:<n>" with no space after the colon, and no other header is sent.
func BuildResponse(status Status, content []byte) []byte {
	line := status.StatusLine()
	length := strconv.Itoa(len(content))

	b := make([]byte, 0, len(line)+len(length)+len(content)+22)
	b = append(b, line...)
	b = append(b, "\r\nContent-Length:"...)
	b = append(b, length...)
	b = append(b, "\r\n\r\n"...)
	b = append(b, content...)
	return b
}

// response buffers one response for a connection.
type response struct {
	bufw *bufio.Writer
}

func setupResponse(c *conn) *response {
	return &response{bufw: c.bufw}
}

// send writes the response and flushes it to the connection.
func (w *response) send(status Status, content []byte) error {
	if _, err := w.bufw.Write(BuildResponse(status, content)); err != nil {
		return err
	}
	return w.bufw.Flush()
}
