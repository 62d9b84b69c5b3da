package httpd

// server.go holds the listener side: accept connections and hand each one to the pool.

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/astaxie/beego/logs"

	"poolhttpd/pool"
)

var ErrServerClosed = errors.New("httpd: Server closed")

const (
	DefaultWorkers        = 5
	DefaultMaxHeaderBytes = 1 << 20
)

// Server accepts TCP connections and serves each one on a fixed pool of workers.
// Only Addr is required; every other field has a default.
type Server struct {
	Addr    string
	Workers int // size of the worker pool
	// QueueLimit bounds the connections waiting for a worker. Zero leaves the queue
	// unbounded, in which case a sustained overload grows it without limit.
	QueueLimit     int
	MaxHeaderBytes int64
	ReadTimeout    time.Duration // zero means no deadline

	Routes    *RouteTable
	Resources ResourceLoader
	Logger    *logs.BeeLogger

	mu         sync.Mutex
	listener   net.Listener
	dispatcher *pool.Dispatcher
	inShutdown int32
}

// ListenAndServe listens on Addr and calls Serve.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Shutdown is called, in which case it returns
// ErrServerClosed.
func (s *Server) Serve(l net.Listener) error {
	if s.Resources == nil {
		l.Close()
		return errors.New("httpd: Server.Resources is nil")
	}

	d, err := s.startDispatcher(l)
	if err != nil {
		l.Close()
		return err
	}
	log := s.logger()
	log.Info("[server] listening on %s with %d workers", l.Addr(), d.Size())

	for {
		rwc, err := l.Accept()
		if err != nil {
			if s.shuttingDown() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			log.Error("[server] accept: %v", err)
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(5 * time.Millisecond)
			}
			continue // keep serving other connections
		}

		if err = d.Submit(newConn(rwc, s)); err != nil {
			log.Warn("[server] %s rejected: %v", rwc.RemoteAddr(), err)
			rwc.Close()
		}
	}
}

// Shutdown closes the listener, then waits for queued and running connections to finish
// or for ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	atomic.StoreInt32(&s.inShutdown, 1)

	s.mu.Lock()
	l, d := s.listener, s.dispatcher
	s.mu.Unlock()

	var err error
	if l != nil {
		if err = l.Close(); errors.Is(err, net.ErrClosed) {
			err = nil
		}
	}
	if d != nil {
		if derr := d.Shutdown(ctx); derr != nil {
			return derr
		}
	}
	s.logger().Info("[server] stopped")
	return err
}

// Dispatcher exposes the worker pool once Serve has started, nil before.
func (s *Server) Dispatcher() *pool.Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatcher
}

func (s *Server) startDispatcher(l net.Listener) (*pool.Dispatcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shuttingDown() {
		return nil, ErrServerClosed
	}
	if s.dispatcher != nil {
		return nil, errors.New("httpd: Server already serving")
	}

	workers := s.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	d, err := pool.New(workers, pool.WithQueueLimit(s.QueueLimit), pool.WithLogger(s.logger()))
	if err != nil {
		return nil, err
	}
	s.listener = l
	s.dispatcher = d
	return d, nil
}

func (s *Server) shuttingDown() bool {
	return atomic.LoadInt32(&s.inShutdown) != 0
}

func (s *Server) maxHeaderBytes() int64 {
	if s.MaxHeaderBytes > 0 {
		return s.MaxHeaderBytes
	}
	return DefaultMaxHeaderBytes
}

func (s *Server) routes() *RouteTable {
	if s.Routes != nil {
		return s.Routes
	}
	return defaultRoutes
}

func (s *Server) logger() *logs.BeeLogger {
	if s.Logger != nil {
		return s.Logger
	}
	return defaultLogger
}

var (
	defaultRoutes = DefaultRoutes(DefaultSleepDelay)
	defaultLogger = logs.NewLogger()
)
