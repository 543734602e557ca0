package network

import (
	"errors"
	"net"
	"net/http"
	"strings"
)

// ErrAddressUndetermined means the client's network address could not be
// resolved. The attendance gate treats this as access denied, never as open.
var ErrAddressUndetermined = errors.New("client network address could not be determined")

// AddressResolver is the input port for finding the network address a request
// originates from.
type AddressResolver interface {
	ClientAddress(r *http.Request) (string, error)
}

// HeaderResolver resolves the client address from X-Forwarded-For when the
// service sits behind a proxy, falling back to the socket's remote address.
type HeaderResolver struct{}

// NewHeaderResolver create new instance
func NewHeaderResolver() *HeaderResolver {
	return &HeaderResolver{}
}

// ClientAddress returns the originating IP, or ErrAddressUndetermined.
func (HeaderResolver) ClientAddress(r *http.Request) (string, error) {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First entry is the original client.
		addr := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if addr != "" {
			return addr, nil
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "", ErrAddressUndetermined
	}
	return host, nil
}
