package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/compcheck/internal/config"
)

// Connection pool settings of the outbound transport.
const (
	maxIdleConns        = 32
	maxIdleConnsPerHost = 4
	idleConnTimeout     = 30 * time.Second
	dialTimeout         = 10 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
)

// newTransport builds the outbound transport for cfg.
// Bodies are never decompressed by the transport. With a SOCKS5 proxy
// configured, every connection is dialed through it; otherwise proxies
// from the environment are honored.
func newTransport(cfg config.FetchConfig) (*http.Transport, error) {
	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: 30 * time.Second,
	}

	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		DisableCompression:  true,
	}

	if cfg.ProxyAddress == "" {
		return t, nil
	}

	socks, err := proxy.SOCKS5("tcp", cfg.ProxyAddress, nil, dialer)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}
	t.Proxy = nil
	t.DialContext = contextDialer(socks)

	return t, nil
}

// contextDialer adapts a proxy.Dialer to the DialContext signature.
// The SOCKS5 dialer of x/net implements proxy.ContextDialer; other dialers
// are raced against ctx in a goroutine.
func contextDialer(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}

	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		resultCh := make(chan dialResult, 1)

		go func() {
			conn, err := d.Dial(network, addr)
			resultCh <- dialResult{conn, err}
		}()

		select {
		case result := <-resultCh:
			return result.conn, result.err
		case <-ctx.Done():
			go func() {
				if result := <-resultCh; result.conn != nil {
					result.conn.Close()
				}
			}()
			return nil, ctx.Err()
		}
	}
}
