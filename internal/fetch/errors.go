package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/nao1215/compcheck/internal/model"
)

// ErrTooManyRedirects is returned when a redirect chain exceeds the hop limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// Caller-facing details of classified failures.
const (
	timeoutDetail = "The server took too long to respond."
	networkDetail = "Could not reach the server. (Error: %s)"
)

// classify converts an error from the round trip or body read into a
// *model.CheckError. ctx is the fetch context carrying the deadline.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("fetch cancelled: %w", err)
	}

	if isTimeout(ctx, err) {
		return model.NewCheckError(model.ErrTimeout, timeoutDetail, err)
	}

	return model.NewCheckError(model.ErrNetwork, fmt.Sprintf(networkDetail, cause(err)), err)
}

// isTimeout reports whether err is the result of the fetch deadline or a
// transport-level timeout.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// cause returns a short description of a transport failure.
func cause(err error) string {
	var (
		dnsErr     *net.DNSError
		certErr    *tls.CertificateVerificationError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
		recordErr  tls.RecordHeaderError
	)

	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return ErrTooManyRedirects.Error()
	case errors.As(err, &dnsErr):
		return fmt.Sprintf("DNS lookup failed for %s", dnsErr.Name)
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "connection reset by peer"
	case errors.As(err, &certErr), errors.As(err, &unknownCA), errors.As(err, &hostErr), errors.As(err, &invalidErr):
		return "TLS certificate verification failed"
	case errors.As(err, &recordErr):
		return "TLS handshake failed"
	default:
		return err.Error()
	}
}
