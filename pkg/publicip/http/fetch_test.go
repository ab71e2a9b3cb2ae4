package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duiadns/pkg/publicip/ipversion"
)

type roundTripFunc func(r *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func Test_fetch(t *testing.T) {
	t.Parallel()

	errDummy := errors.New("dummy")

	canceledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := map[string]struct {
		ctx         context.Context
		url         string
		version     ipversion.IPVersion
		httpStatus  int
		httpContent []byte
		httpErr     error
		publicIP    netip.Addr
		err         error
	}{
		"canceled context": {
			ctx:     canceledCtx,
			url:     "http://ipv4.duiadns.net",
			version: ipversion.IP4,
			err:     errors.New(`Get "http://ipv4.duiadns.net": context canceled`),
		},
		"http error": {
			ctx:     context.Background(),
			url:     "http://ipv4.duiadns.net",
			version: ipversion.IP4,
			httpErr: errDummy,
			err:     errors.New(`Get "http://ipv4.duiadns.net": dummy`),
		},
		"banned with 403": {
			ctx:        context.Background(),
			url:        "http://ipv4.duiadns.net",
			version:    ipversion.IP4,
			httpStatus: http.StatusForbidden,
			err:        errors.New("banned: 403 Forbidden"),
		},
		"banned with 429": {
			ctx:        context.Background(),
			url:        "http://ipv4.duiadns.net",
			version:    ipversion.IP4,
			httpStatus: http.StatusTooManyRequests,
			err:        errors.New("banned: 429 Too Many Requests"),
		},
		"status not ok": {
			ctx:        context.Background(),
			url:        "http://ipv4.duiadns.net",
			version:    ipversion.IP4,
			httpStatus: http.StatusNotFound,
			err:        errors.New("HTTP status is not OK: 404 Not Found"),
		},
		"empty response": {
			ctx:        context.Background(),
			url:        "http://ipv4.duiadns.net",
			version:    ipversion.IP4,
			httpStatus: http.StatusOK,
			err:        errors.New(`IP address malformed: ""`),
		},
		"html response": {
			ctx:         context.Background(),
			url:         "http://ipv4.duiadns.net",
			version:     ipversion.IP4,
			httpStatus:  http.StatusOK,
			httpContent: []byte("<html>1.67.201.251</html>"),
			err:         errors.New(`IP address malformed: "<html>1.67.201.251</html>"`),
		},
		"two addresses": {
			ctx:         context.Background(),
			url:         "http://ipv4.duiadns.net",
			version:     ipversion.IP4,
			httpStatus:  http.StatusOK,
			httpContent: []byte("1.67.201.251 1.67.201.252"),
			err:         errors.New(`IP address malformed: "1.67.201.251 1.67.201.252"`),
		},
		"single IPv4 for IP4": {
			ctx:         context.Background(),
			url:         "http://ipv4.duiadns.net",
			version:     ipversion.IP4,
			httpStatus:  http.StatusOK,
			httpContent: []byte("1.67.201.251"),
			publicIP:    netip.AddrFrom4([4]byte{1, 67, 201, 251}),
		},
		"surrounding whitespace": {
			ctx:         context.Background(),
			url:         "http://ipv4.duiadns.net",
			version:     ipversion.IP4,
			httpStatus:  http.StatusOK,
			httpContent: []byte("\n 1.67.201.251 \r\n"),
			publicIP:    netip.AddrFrom4([4]byte{1, 67, 201, 251}),
		},
		"IPv4-mapped IPv6 unmapped for IP4": {
			ctx:         context.Background(),
			url:         "http://ipv4.duiadns.net",
			version:     ipversion.IP4,
			httpStatus:  http.StatusOK,
			httpContent: []byte("::ffff:1.67.201.251"),
			publicIP:    netip.AddrFrom4([4]byte{1, 67, 201, 251}),
		},
		"IPv6 for IP4": {
			ctx:         context.Background(),
			url:         "http://ipv4.duiadns.net",
			version:     ipversion.IP4,
			httpStatus:  http.StatusOK,
			httpContent: []byte("2001:db8::1"),
			err: errors.New("IP address does not match IP version: " +
				"2001:db8::1 is not ipv4"),
		},
		"single IPv6 for IP6": {
			ctx:         context.Background(),
			url:         "http://ipv6.duiadns.net",
			version:     ipversion.IP6,
			httpStatus:  http.StatusOK,
			httpContent: []byte("2001:db8::1"),
			publicIP:    netip.MustParseAddr("2001:db8::1"),
		},
		"zone stripped for IP6": {
			ctx:         context.Background(),
			url:         "http://ipv6.duiadns.net",
			version:     ipversion.IP6,
			httpStatus:  http.StatusOK,
			httpContent: []byte("2001:db8::1%eth0"),
			publicIP:    netip.MustParseAddr("2001:db8::1"),
		},
		"IPv4 for IP6": {
			ctx:         context.Background(),
			url:         "http://ipv6.duiadns.net",
			version:     ipversion.IP6,
			httpStatus:  http.StatusOK,
			httpContent: []byte("1.67.201.251"),
			err: errors.New("IP address does not match IP version: " +
				"1.67.201.251 is not ipv6"),
		},
		"single IPv4 for IP4or6": {
			ctx:         context.Background(),
			url:         "https://api64.ipify.org",
			version:     ipversion.IP4or6,
			httpStatus:  http.StatusOK,
			httpContent: []byte("1.67.201.251"),
			publicIP:    netip.AddrFrom4([4]byte{1, 67, 201, 251}),
		},
		"single IPv6 for IP4or6": {
			ctx:         context.Background(),
			url:         "https://api64.ipify.org",
			version:     ipversion.IP4or6,
			httpStatus:  http.StatusOK,
			httpContent: []byte("2001:db8::1"),
			publicIP:    netip.MustParseAddr("2001:db8::1"),
		},
	}
	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			const userAgent = "test-agent/0.1"

			client := &http.Client{
				Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
					assert.Equal(t, tc.url, r.URL.String())
					assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
					err := r.Context().Err()
					if err != nil {
						return nil, err
					} else if tc.httpErr != nil {
						return nil, tc.httpErr
					}
					return &http.Response{
						StatusCode: tc.httpStatus,
						Body:       io.NopCloser(bytes.NewReader(tc.httpContent)),
					}, nil
				}),
			}

			publicIP, err := fetch(tc.ctx, client, tc.url, userAgent, tc.version)

			if tc.err != nil {
				require.Error(t, err)
				assert.Equal(t, tc.err.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}

			if tc.publicIP.Compare(publicIP) != 0 {
				t.Errorf("IP address mismatch: expected %s and got %s", tc.publicIP, publicIP)
			}
		})
	}
}
