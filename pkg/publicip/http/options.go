package http

import (
	"time"

	"duiadns/pkg/publicip/ipversion"
)

type settings struct {
	providersIP  []Provider
	providersIP4 []Provider
	providersIP6 []Provider
	timeout      time.Duration
	userAgent    string
}

func newDefaultSettings() settings {
	const defaultTimeout = 10 * time.Second
	const defaultUserAgent = "DUIA-DNS-UPDATER/1.0"
	return settings{
		providersIP:  []Provider{Ipify},
		providersIP4: []Provider{Duia},
		providersIP6: []Provider{Duia},
		timeout:      defaultTimeout,
		userAgent:    defaultUserAgent,
	}
}

type Option func(s *settings) error

func SetProvidersIP(first Provider, providers ...Provider) Option {
	providers = append(providers, first)
	return func(s *settings) (err error) {
		for _, provider := range providers {
			err = ValidateProvider(provider, ipversion.IP4or6)
			if err != nil {
				return err
			}
		}
		s.providersIP = providers
		return nil
	}
}

func SetProvidersIP4(first Provider, providers ...Provider) Option {
	providers = append(providers, first)
	return func(s *settings) (err error) {
		for _, provider := range providers {
			err = ValidateProvider(provider, ipversion.IP4)
			if err != nil {
				return err
			}
		}
		s.providersIP4 = providers
		return nil
	}
}

func SetProvidersIP6(first Provider, providers ...Provider) Option {
	providers = append(providers, first)
	return func(s *settings) (err error) {
		for _, provider := range providers {
			err = ValidateProvider(provider, ipversion.IP6)
			if err != nil {
				return err
			}
		}
		s.providersIP6 = providers
		return nil
	}
}

func SetTimeout(timeout time.Duration) Option {
	return func(s *settings) (err error) {
		s.timeout = timeout
		return nil
	}
}

func SetUserAgent(userAgent string) Option {
	return func(s *settings) (err error) {
		s.userAgent = userAgent
		return nil
	}
}
