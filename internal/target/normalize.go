package target

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"github.com/nao1215/compcheck/internal/model"
)

// DefaultScheme is prepended to targets that carry no recognized scheme.
const DefaultScheme = "http"

// Detail strings returned to callers.
const (
	missingDetail = "Provide the page to check in the url query parameter."
	invalidDetail = "The url parameter is not a valid absolute http or https URL."
)

var (
	errNoHost     = errors.New("missing host")
	errEmptyPort  = errors.New("empty port")
	errPortRange  = errors.New("port out of range")
	errBadScheme  = errors.New("unsupported scheme")
	errOpaqueForm = errors.New("URL has no authority")
)

// hostProfile converts hosts for lookup the way browsers do. Underscores are
// allowed because real-world hosts use them even though STD3 rules forbid it.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.BidiRule(),
)

// defaultPorts maps schemes to the port that is omitted from canonical URLs.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Normalize validates raw and returns its canonical absolute URL.
//
// It returns a *model.CheckError wrapping model.ErrMissingParameter when raw
// is empty, and model.ErrInvalidURL when the result is not a valid absolute
// http(s) URL with a host.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", model.NewCheckError(model.ErrMissingParameter, missingDetail, nil)
	}

	if !HasScheme(raw) {
		raw = DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", invalid(err)
	}
	if err := canonicalize(u); err != nil {
		return "", invalid(err)
	}

	return u.String(), nil
}

// HasScheme reports whether raw starts with "http://" or "https://",
// ignoring case.
func HasScheme(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// canonicalize validates the authority of u and rewrites it in place.
func canonicalize(u *url.URL) error {
	u.Scheme = strings.ToLower(u.Scheme)
	if _, ok := defaultPorts[u.Scheme]; !ok {
		return fmt.Errorf("%w: %q", errBadScheme, u.Scheme)
	}
	if u.Opaque != "" {
		return errOpaqueForm
	}
	if strings.HasSuffix(u.Host, ":") {
		return errEmptyPort
	}

	hostname := u.Hostname()
	if hostname == "" {
		return errNoHost
	}

	port := u.Port()
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("%w: %s", errPortRange, port)
		}
		port = strconv.Itoa(n)
		if port == defaultPorts[u.Scheme] {
			port = ""
		}
	}

	host, err := canonicalHost(hostname)
	if err != nil {
		return err
	}

	if port == "" {
		if strings.Contains(host, ":") {
			u.Host = "[" + host + "]"
		} else {
			u.Host = host
		}
	} else {
		u.Host = net.JoinHostPort(host, port)
	}

	return nil
}

// canonicalHost lowercases IP literals and converts domain names to ASCII.
func canonicalHost(hostname string) (string, error) {
	if ip := net.ParseIP(hostname); ip != nil {
		return strings.ToLower(hostname), nil
	}

	ascii, err := hostProfile.ToASCII(hostname)
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", hostname, err)
	}
	if ascii == "" {
		return "", errNoHost
	}
	return ascii, nil
}

func invalid(cause error) error {
	return model.NewCheckError(model.ErrInvalidURL, invalidDetail, cause)
}
