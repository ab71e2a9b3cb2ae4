package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"

	"duiadns/pkg/publicip/ipversion"
)

var (
	ErrBanned          = errors.New("banned")
	ErrHTTPStatusNotOK = errors.New("HTTP status is not OK")
	ErrIPMalformed     = errors.New("IP address malformed")
	ErrIPWrongVersion  = errors.New("IP address does not match IP version")
)

// fetch queries the echo service at the url given and parses the
// plain text response body as a single IP address of the version
// requested. Any other body content is a failure.
func fetch(ctx context.Context, client *http.Client, url, userAgent string,
	version ipversion.IPVersion) (publicIP netip.Addr, err error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return netip.Addr{}, err
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := client.Do(request)
	if err != nil {
		return netip.Addr{}, err
	}
	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return netip.Addr{}, err
	}

	switch {
	case response.StatusCode == http.StatusForbidden ||
		response.StatusCode == http.StatusTooManyRequests:
		return netip.Addr{}, fmt.Errorf("%w: %d %s",
			ErrBanned, response.StatusCode, http.StatusText(response.StatusCode))
	case response.StatusCode < 200 || response.StatusCode > 299:
		return netip.Addr{}, fmt.Errorf("%w: %d %s",
			ErrHTTPStatusNotOK, response.StatusCode, http.StatusText(response.StatusCode))
	}

	s := strings.TrimSpace(string(b))
	publicIP, err = netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrIPMalformed, s)
	}
	publicIP = publicIP.Unmap().WithZone("")

	switch version { //nolint:exhaustive
	case ipversion.IP4:
		if !publicIP.Is4() {
			return netip.Addr{}, fmt.Errorf("%w: %s is not %s",
				ErrIPWrongVersion, publicIP, version)
		}
	case ipversion.IP6:
		if publicIP.Is4() {
			return netip.Addr{}, fmt.Errorf("%w: %s is not %s",
				ErrIPWrongVersion, publicIP, version)
		}
	}

	return publicIP, nil
}
