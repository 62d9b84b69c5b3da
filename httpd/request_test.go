package httpd

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestHead(t *testing.T) {
	tests := []struct {
		name string
		line string
		want RequestHead
		err  error
	}{
		{"http 1.1", "GET / HTTP/1.1", RequestHead{MethodGet, "/", ProtocolHTTP11}, nil},
		{"http 1.0", "GET /sleep HTTP/1.0", RequestHead{MethodGet, "/sleep", ProtocolHTTP10}, nil},
		{"query kept in uri", "GET /a?b=c HTTP/1.1", RequestHead{MethodGet, "/a?b=c", ProtocolHTTP11}, nil},
		{"two tokens", "GET /", RequestHead{}, ErrUnknownRouteHeader},
		{"four tokens", "GET / HTTP/1.1 extra", RequestHead{}, ErrUnknownRouteHeader},
		{"double space", "GET  / HTTP/1.1", RequestHead{}, ErrUnknownRouteHeader},
		{"empty", "", RequestHead{}, ErrUnknownRouteHeader},
		{"bad method", "POST / HTTP/1.1", RequestHead{}, ErrUnknownMethod},
		{"lowercase method", "get / HTTP/1.1", RequestHead{}, ErrUnknownMethod},
		{"bad protocol", "GET / HTTP/2.0", RequestHead{}, ErrUnknownProtocol},
		{"bad method wins over protocol", "PUT / HTTP/9", RequestHead{}, ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequestHead(tt.line)
			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeadStrings(t *testing.T) {
	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "HTTP/1.0", ProtocolHTTP10.String())
	assert.Equal(t, "HTTP/1.1", ProtocolHTTP11.String())
}

func TestReadRequestLines(t *testing.T) {
	t.Run("stops at blank line", func(t *testing.T) {
		bufr := bufio.NewReader(strings.NewReader("GET / HTTP/1.1\r\nHost: x\r\n\r\nbody"))
		lines, err := readRequestLines(bufr)
		require.NoError(t, err)
		assert.Equal(t, []string{"GET / HTTP/1.1", "Host: x"}, lines)

		rest, _ := bufr.ReadString('\n')
		assert.Equal(t, "body", rest)
	})

	t.Run("bare LF terminators", func(t *testing.T) {
		lines, err := readRequestLines(bufio.NewReader(strings.NewReader("GET / HTTP/1.0\nA: b\n\n")))
		require.NoError(t, err)
		assert.Equal(t, []string{"GET / HTTP/1.0", "A: b"}, lines)
	})

	t.Run("eof before blank line", func(t *testing.T) {
		lines, err := readRequestLines(bufio.NewReader(strings.NewReader("GET / HTTP/1.1\r\n")))
		require.NoError(t, err)
		assert.Equal(t, []string{"GET / HTTP/1.1"}, lines)
	})

	t.Run("nothing sent", func(t *testing.T) {
		lines, err := readRequestLines(bufio.NewReader(strings.NewReader("")))
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("line longer than buffer", func(t *testing.T) {
		uri := "/" + strings.Repeat("a", 100)
		in := "GET " + uri + " HTTP/1.1\r\n\r\n"
		lines, err := readRequestLines(bufio.NewReaderSize(strings.NewReader(in), 16))
		require.NoError(t, err)
		require.Len(t, lines, 1)

		head, err := ParseRequestHead(lines[0])
		require.NoError(t, err)
		assert.Equal(t, uri, head.URI)
	})
}
