package httpd

import (
	"bufio"
	"errors"
	"io"
	"net"
	"runtime"
	"time"
)

// conn is the job for one accepted connection. It owns rwc exclusively: the accept loop
// hands it to the dispatcher and exactly one worker runs it, once.
type conn struct {
	svr *Server
	rwc net.Conn

	// lr caps how much of the request head is read, so a peer that never sends the
	// blank line cannot grow the read without bound.
	lr   *io.LimitedReader
	bufr *bufio.Reader
	bufw *bufio.Writer
}

func newConn(rwc net.Conn, svr *Server) *conn {
	lr := &io.LimitedReader{R: rwc, N: svr.maxHeaderBytes()}
	return &conn{
		svr:  svr,
		rwc:  rwc,
		lr:   lr,
		bufr: bufio.NewReaderSize(lr, 4<<10),
		bufw: bufio.NewWriterSize(rwc, 4<<10),
	}
}

// Run implements pool.Job.
func (c *conn) Run() {
	c.serve()
}

func (c *conn) serve() {
	log := c.svr.logger()
	defer func() {
		if err := recover(); err != nil {
			var trace [4096]byte
			n := runtime.Stack(trace[:], false)
			log.Error("[conn] panic recovered: %v\n%s", err, trace[:n])
		}
		c.close()
	}()

	if d := c.svr.ReadTimeout; d > 0 {
		_ = c.rwc.SetReadDeadline(time.Now().Add(d))
	}

	lines, err := c.readRequest()
	if err != nil {
		handleError(err, c)
		return
	}
	log.Debug("[conn] %s request: %q", c.remoteAddr(), lines)
	if len(lines) == 0 {
		return
	}

	head, err := ParseRequestHead(lines[0])
	if err != nil {
		log.Warn("[conn] %s get request head failed with error: %v", c.remoteAddr(), err)
		log.Warn("[conn] %s request was: %q", c.remoteAddr(), lines[0])
		return
	}

	route := c.svr.routes().Lookup(head.URI)
	if route.Delay > 0 {
		time.Sleep(route.Delay)
	}

	content, err := c.svr.Resources.Load(route.Resource)
	if err != nil {
		log.Error("[conn] %s %s %s: %v", c.remoteAddr(), head.Method, head.URI, err)
		return
	}

	if err = setupResponse(c).send(route.Status, content); err != nil {
		handleError(err, c)
		return
	}
	log.Info("[conn] %s %s %s -> %s", c.remoteAddr(), head.Method, head.URI, route.Status)
}

// readRequest reads the request head: every line up to the first blank one.
func (c *conn) readRequest() ([]string, error) {
	lines, err := readRequestLines(c.bufr)
	if err == nil && c.lr.N <= 0 {
		err = ErrHeaderTooLarge
	}
	return lines, err
}

func (c *conn) remoteAddr() string {
	if addr := c.rwc.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return "-"
}

func (c *conn) close() {
	c.rwc.Close()
}

// handleError logs a connection-level failure. The client gets no response.
func handleError(err error, c *conn) {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		c.svr.logger().Warn("[conn] %s read timed out", c.remoteAddr())
		return
	}
	c.svr.logger().Warn("[conn] %s dropped: %v", c.remoteAddr(), err)
}
