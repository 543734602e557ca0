package network

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestHeaderResolverClientAddress(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
		wantErr    error
	}{
		{name: "forwarded header wins", forwarded: "10.0.0.1", remoteAddr: "172.17.0.2:54321", want: "10.0.0.1"},
		{name: "first forwarded entry is the client", forwarded: "10.0.0.1, 172.17.0.9, 172.17.0.2", remoteAddr: "172.17.0.2:54321", want: "10.0.0.1"},
		{name: "forwarded entries may carry spaces", forwarded: " 10.0.0.1 ,172.17.0.9", remoteAddr: "172.17.0.2:54321", want: "10.0.0.1"},
		{name: "falls back to remote addr", remoteAddr: "10.0.0.5:43210", want: "10.0.0.5"},
		{name: "ipv6 remote addr", remoteAddr: "[::1]:43210", want: "::1"},
		{name: "unparseable remote addr", remoteAddr: "nonsense", wantErr: ErrAddressUndetermined},
		{name: "missing remote addr", remoteAddr: "", wantErr: ErrAddressUndetermined},
	}

	resolver := NewHeaderResolver()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/v1/attendance/check-in", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			got, err := resolver.ClientAddress(r)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ClientAddress() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClientAddress() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClientAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}
