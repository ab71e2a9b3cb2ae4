// Package duia implements the DUIA dynamic DNS update protocol,
// a single authenticated GET to dynamic.duia per hostname.
package duia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

type Client struct {
	passwordHash string
	userAgent    string
	httpClient   *http.Client
}

// New creates a DUIA update client. passwordHash is the MD5 hash of
// the account password shared by all hostnames.
func New(httpClient *http.Client, passwordHash, userAgent string) *Client {
	return &Client{
		passwordHash: passwordHash,
		userAgent:    userAgent,
		httpClient:   httpClient,
	}
}

var (
	ErrNoIPToUpdate       = errors.New("no IP address to update")
	ErrHTTPStatusNotValid = errors.New("HTTP status is not valid")
)

// Update submits the addresses given for the hostname given.
// At least one of ipv4 and ipv6 must be a valid address; an invalid
// address skips the update of the corresponding record. Success is
// any 2xx response status; anything else is an error and the caller
// should not retry within the same run.
func (c *Client) Update(ctx context.Context, hostname string,
	ipv4, ipv6 netip.Addr) (err error) {
	hasIPv4, hasIPv6 := ipv4.IsValid(), ipv6.IsValid()

	var host string
	switch {
	case hasIPv4 && hasIPv6:
		host = "ip.duiadns.net"
	case hasIPv4:
		host = "ipv4.duiadns.net"
	case hasIPv6:
		host = "ipv6.duiadns.net"
	default:
		return fmt.Errorf("%w: for hostname %s", ErrNoIPToUpdate, hostname)
	}

	u := url.URL{
		Scheme: "http",
		Host:   host,
		Path:   "/dynamic.duia",
	}
	values := url.Values{}
	values.Set("host", hostname)
	values.Set("password", c.passwordHash)
	if hasIPv4 {
		values.Set("ip4", ipv4.String())
	}
	if hasIPv6 {
		values.Set("ip6", ipv6.String())
	}
	u.RawQuery = values.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating http request: %w", err)
	}
	request.Header.Set("User-Agent", c.userAgent)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("doing http request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK ||
		response.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d: %s", ErrHTTPStatusNotValid,
			response.StatusCode, bodyToSingleLine(response.Body))
	}

	return nil
}

func bodyToSingleLine(body io.Reader) (s string) {
	b, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	s = string(b)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
