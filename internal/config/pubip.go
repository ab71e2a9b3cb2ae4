package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosettings/validate"
	"github.com/qdm12/gotree"

	"duiadns/pkg/publicip/dns"
	"duiadns/pkg/publicip/http"
	"duiadns/pkg/publicip/ipversion"
)

const all = "all"

type PubIP struct {
	HTTPEnabled       *bool
	HTTPIPv4Providers []string
	HTTPIPv6Providers []string
	DNSEnabled        *bool
	DNSProviders      []string
	DNSTimeout        time.Duration
}

func (p *PubIP) setDefaults() {
	p.HTTPEnabled = gosettings.DefaultPointer(p.HTTPEnabled, true)
	p.HTTPIPv4Providers = gosettings.DefaultSlice(p.HTTPIPv4Providers,
		[]string{string(http.Duia)})
	p.HTTPIPv6Providers = gosettings.DefaultSlice(p.HTTPIPv6Providers,
		[]string{string(http.Duia)})
	p.DNSEnabled = gosettings.DefaultPointer(p.DNSEnabled, true)
	p.DNSProviders = gosettings.DefaultSlice(p.DNSProviders, []string{all})
	const defaultDNSTimeout = 3 * time.Second
	p.DNSTimeout = gosettings.DefaultComparable(p.DNSTimeout, defaultDNSTimeout)
}

var ErrNoFetcherEnabled = errors.New("at least one fetcher must be enabled")

func (p PubIP) Validate() (err error) {
	if !*p.HTTPEnabled && !*p.DNSEnabled {
		return fmt.Errorf("%w", ErrNoFetcherEnabled)
	}

	err = validateHTTPIPProviders(p.HTTPIPv4Providers, ipversion.IP4)
	if err != nil {
		return fmt.Errorf("HTTP IPv4 providers: %w", err)
	}

	err = validateHTTPIPProviders(p.HTTPIPv6Providers, ipversion.IP6)
	if err != nil {
		return fmt.Errorf("HTTP IPv6 providers: %w", err)
	}

	err = p.validateDNSProviders()
	if err != nil {
		return fmt.Errorf("DNS providers: %w", err)
	}

	return nil
}

func (p PubIP) String() string {
	return p.toLinesNode().String()
}

func (p PubIP) toLinesNode() (node *gotree.Node) {
	node = gotree.New("Public IP fetching")

	node.Appendf("HTTP enabled: %s", gosettings.BoolToYesNo(p.HTTPEnabled))
	if *p.HTTPEnabled {
		childNode := node.Appendf("HTTP IPv4 providers")
		for _, provider := range p.HTTPIPv4Providers {
			childNode.Appendf(provider)
		}

		childNode = node.Appendf("HTTP IPv6 providers")
		for _, provider := range p.HTTPIPv6Providers {
			childNode.Appendf(provider)
		}
	}

	node.Appendf("DNS enabled: %s", gosettings.BoolToYesNo(p.DNSEnabled))
	if *p.DNSEnabled {
		node.Appendf("DNS timeout: %s", p.DNSTimeout)
		childNode := node.Appendf("DNS providers")
		for _, provider := range p.DNSProviders {
			childNode.Appendf(provider)
		}
	}

	return node
}

func (p *PubIP) read(r *reader.Reader) (err error) {
	p.HTTPEnabled, p.DNSEnabled, err = readFetchers(r)
	if err != nil {
		return err
	}

	p.HTTPIPv4Providers = r.CSV("PUBLICIPV4_HTTP_PROVIDERS")
	p.HTTPIPv6Providers = r.CSV("PUBLICIPV6_HTTP_PROVIDERS")
	p.DNSProviders = r.CSV("PUBLICIP_DNS_PROVIDERS")
	p.DNSTimeout, err = r.Duration("PUBLICIP_DNS_TIMEOUT")
	return err
}

var ErrInvalidFetcher = errors.New("invalid fetcher specified")

func readFetchers(r *reader.Reader) (http, dns *bool, err error) {
	fields := r.CSV("PUBLICIP_FETCHERS")
	if len(fields) == 0 {
		return nil, nil, nil
	}

	http, dns = new(bool), new(bool)
	for i, field := range fields {
		switch field {
		case all:
			*http = true
			*dns = true
		case "http":
			*http = true
		case "dns":
			*dns = true
		default:
			return nil, nil, fmt.Errorf(
				"%w: %q at position %d of %d",
				ErrInvalidFetcher, field, i+1, len(fields))
		}
	}

	return http, dns, nil
}

// ToHTTPOptions assumes the settings have been validated.
func (p PubIP) ToHTTPOptions() (options []http.Option) {
	httpIPv4Providers := stringsToHTTPProviders(p.HTTPIPv4Providers, ipversion.IP4)
	httpIPv6Providers := stringsToHTTPProviders(p.HTTPIPv6Providers, ipversion.IP6)
	return []http.Option{
		http.SetProvidersIP4(httpIPv4Providers[0], httpIPv4Providers[1:]...),
		http.SetProvidersIP6(httpIPv6Providers[0], httpIPv6Providers[1:]...),
	}
}

func stringsToHTTPProviders(providers []string, ipVersion ipversion.IPVersion) (
	updatedProviders []http.Provider) {
	for _, provider := range providers {
		if provider == all {
			return http.ListProvidersForVersion(ipVersion)
		}
	}

	updatedProviders = make([]http.Provider, 0, len(providers))
	for _, provider := range providers {
		// Custom URL check
		parsedURL, err := url.Parse(provider)
		if err == nil && parsedURL != nil && parsedURL.Scheme == "https" {
			updatedProviders = append(updatedProviders, http.CustomProvider(parsedURL))
			continue
		}

		updatedProviders = append(updatedProviders, http.Provider(provider))
	}

	return updatedProviders
}

// ToDNSOptions assumes the settings have been validated.
func (p PubIP) ToDNSOptions() (options []dns.Option) {
	var providers []dns.Provider
	for _, provider := range p.DNSProviders {
		if provider == all {
			providers = dns.ListProviders()
			break
		}
		providers = append(providers, dns.Provider(provider))
	}

	return []dns.Option{
		dns.SetTimeout(p.DNSTimeout),
		dns.SetProviders(providers[0], providers[1:]...),
	}
}

var ErrNoPublicIPDNSProvider = errors.New("no public IP DNS provider specified")

func (p PubIP) validateDNSProviders() (err error) {
	if len(p.DNSProviders) == 0 {
		return fmt.Errorf("%w", ErrNoPublicIPDNSProvider)
	}

	availableProviders := dns.ListProviders()
	validChoices := make([]string, len(availableProviders)+1)
	for i, provider := range availableProviders {
		validChoices[i] = string(provider)
	}
	validChoices[len(validChoices)-1] = all
	return validate.AreAllOneOf(p.DNSProviders, validChoices)
}

var ErrNoPublicIPHTTPProvider = errors.New("no public IP HTTP provider specified")

func validateHTTPIPProviders(providerStrings []string,
	version ipversion.IPVersion) (err error) {
	if len(providerStrings) == 0 {
		return fmt.Errorf("%w", ErrNoPublicIPHTTPProvider)
	}

	availableProviders := http.ListProvidersForVersion(version)
	choices := make(map[string]struct{}, len(availableProviders)+1)
	choices[all] = struct{}{}
	for i := range availableProviders {
		choices[string(availableProviders[i])] = struct{}{}
	}

	for _, providerString := range providerStrings {
		// Custom URL check
		parsedURL, err := url.Parse(providerString)
		if err == nil && parsedURL != nil && parsedURL.Scheme == "https" {
			continue
		}

		_, ok := choices[providerString]
		if !ok {
			return fmt.Errorf("%w: %s", validate.ErrValueNotOneOf, providerString)
		}
	}

	return nil
}
