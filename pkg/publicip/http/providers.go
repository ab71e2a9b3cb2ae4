package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"duiadns/pkg/publicip/ipversion"
)

type Provider string

const (
	Duia      Provider = "duia"
	Icanhazip Provider = "icanhazip"
	Ident     Provider = "ident"
	Ifconfig  Provider = "ifconfig"
	Ipify     Provider = "ipify"
	Ipinfo    Provider = "ipinfo"
	Nnev      Provider = "nnev"
	Seeip     Provider = "seeip"
	Spdyn     Provider = "spdyn"
	Wtfismyip Provider = "wtfismyip"
)

func ListProviders() []Provider {
	return []Provider{
		Duia,
		Icanhazip,
		Ident,
		Ifconfig,
		Ipify,
		Ipinfo,
		Nnev,
		Seeip,
		Spdyn,
		Wtfismyip,
	}
}

func ListProvidersForVersion(version ipversion.IPVersion) (providers []Provider) {
	allProviders := ListProviders()
	for _, provider := range allProviders {
		if provider.SupportsVersion(version) {
			providers = append(providers, provider)
		}
	}
	return providers
}

var (
	ErrUnknownProvider   = errors.New("unknown public IP echo HTTP provider")
	ErrProviderIPVersion = errors.New("provider does not support IP version")
)

func ValidateProvider(provider Provider, version ipversion.IPVersion) error {
	if strings.HasPrefix(string(provider), "url:https://") { // custom HTTP url
		return nil
	}

	for _, possible := range ListProviders() {
		if provider == possible {
			_, ok := provider.url(version)
			if !ok {
				return fmt.Errorf("%w: %q for version %s",
					ErrProviderIPVersion, provider, version.String())
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
}

// url returns the plain text echo URL of the provider for the IP
// version given. The DUIA echo endpoints are plain HTTP since the
// provider does not serve them over TLS.
func (provider Provider) url(version ipversion.IPVersion) (url string, ok bool) {
	switch version {
	case ipversion.IP4:
		switch provider { //nolint:exhaustive
		case Duia:
			url = "http://ipv4.duiadns.net"
		case Icanhazip:
			url = "https://ipv4.icanhazip.com"
		case Ident:
			url = "https://v4.ident.me"
		case Ipify:
			url = "https://api.ipify.org"
		case Nnev:
			url = "https://ip4.nnev.de"
		case Seeip:
			url = "https://ipv4.seeip.org"
		case Wtfismyip:
			url = "https://ipv4.wtfismyip.com/text"
		}

	case ipversion.IP6:
		switch provider { //nolint:exhaustive
		case Duia:
			url = "http://ipv6.duiadns.net"
		case Icanhazip:
			url = "https://ipv6.icanhazip.com"
		case Ident:
			url = "https://v6.ident.me"
		case Ipify:
			url = "https://api6.ipify.org"
		case Nnev:
			url = "https://ip6.nnev.de"
		case Seeip:
			url = "https://ipv6.seeip.org"
		case Wtfismyip:
			url = "https://ipv6.wtfismyip.com/text"
		}

	case ipversion.IP4or6:
		switch provider { //nolint:exhaustive
		case Icanhazip:
			url = "https://icanhazip.com"
		case Ident:
			url = "https://ident.me"
		case Ifconfig:
			url = "https://ifconfig.io/ip"
		case Ipify:
			url = "https://api64.ipify.org"
		case Ipinfo:
			url = "https://ipinfo.io/ip"
		case Nnev:
			url = "https://ip.nnev.de"
		case Seeip:
			url = "https://api.seeip.org"
		case Spdyn:
			url = "https://checkip.spdyn.de"
		case Wtfismyip:
			url = "https://wtfismyip.com/text"
		}
	}

	// Custom URL?
	if s := string(provider); strings.HasPrefix(s, "url:") {
		url = strings.TrimPrefix(s, "url:")
	}

	if url == "" {
		return "", false
	}

	return url, true
}

func (provider Provider) SupportsVersion(version ipversion.IPVersion) bool {
	_, ok := provider.url(version)
	return ok
}

// CustomProvider creates a provider with a custom HTTPS URL.
// It is the responsibility of the caller to make sure it is a valid URL
// and that it supports the desired IP version(s) as no further check is
// done on it.
func CustomProvider(httpsURL *url.URL) Provider {
	return Provider("url:" + httpsURL.String())
}
