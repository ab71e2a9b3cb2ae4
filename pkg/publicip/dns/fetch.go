package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/miekg/dns"
)

var (
	ErrAnswerNotReceived    = errors.New("answer not received")
	ErrAnswerTypeMismatch   = errors.New("answer type is not expected")
	ErrRecordEmpty          = errors.New("record is empty")
	ErrTooManyTXTRecords    = errors.New("too many TXT records")
	ErrIPMalformed          = errors.New("IP address malformed")
	ErrQueryTypeUnsupported = errors.New("query type is not supported")
)

func fetch(ctx context.Context, client Client, network string,
	providerData providerData) (publicIPs []netip.Addr, err error) {
	message := &dns.Msg{
		MsgHdr: dns.MsgHdr{
			Opcode: dns.OpcodeQuery,
		},
		Question: []dns.Question{
			{
				Name:   providerData.fqdn,
				Qtype:  uint16(providerData.qType),
				Qclass: uint16(providerData.class),
			},
		},
	}

	// Note the IP family specific networks dial the nameserver IP
	// address directly, since resolving the nameserver hostname could
	// occur over the other IP family. Both providers have their IP
	// addresses in their TLS certificates.
	var address string
	switch network {
	case "tcp-tls":
		address = providerData.TLSName
	case "tcp4-tls":
		address = providerData.IPv4.String()
	case "tcp6-tls":
		address = providerData.IPv6.String()
	default:
		address = providerData.Address
	}
	address = net.JoinHostPort(address, "853")

	response, _, err := client.ExchangeContext(ctx, message, address)
	if err != nil {
		return nil, err
	}

	if len(response.Answer) == 0 {
		return nil, ErrAnswerNotReceived
	}

	publicIPs = make([]netip.Addr, 0, len(response.Answer))
	for _, answer := range response.Answer {
		var publicIP netip.Addr
		switch providerData.qType {
		case dns.Type(dns.TypeTXT):
			publicIP, err = handleTXTAnswer(answer)
			if err != nil {
				return nil, fmt.Errorf("handling TXT answer: %w", err)
			}
		case dns.Type(dns.TypeANY):
			publicIP, err = handleANYAnswer(answer)
			if err != nil {
				return nil, fmt.Errorf("handling ANY answer: %w", err)
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrQueryTypeUnsupported, providerData.qType)
		}
		publicIPs = append(publicIPs, publicIP)
	}

	return publicIPs, nil
}

func handleTXTAnswer(answer dns.RR) (publicIP netip.Addr, err error) {
	answerTXT, ok := answer.(*dns.TXT)
	if !ok {
		return netip.Addr{}, fmt.Errorf("%w: %T instead of *dns.TXT",
			ErrAnswerTypeMismatch, answer)
	}

	switch len(answerTXT.Txt) {
	case 0:
		return netip.Addr{}, ErrRecordEmpty
	case 1:
	default:
		return netip.Addr{}, fmt.Errorf("%w: %d instead of 1",
			ErrTooManyTXTRecords, len(answerTXT.Txt))
	}

	publicIP, err = netip.ParseAddr(answerTXT.Txt[0])
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %s", ErrIPMalformed, err)
	}

	return publicIP.Unmap(), nil
}

func handleANYAnswer(answer dns.RR) (publicIP netip.Addr, err error) {
	var ok bool
	switch rr := answer.(type) {
	case *dns.A:
		publicIP, ok = netip.AddrFromSlice(rr.A)
		if !ok {
			return netip.Addr{}, fmt.Errorf("%w: %s", ErrIPMalformed, rr.A)
		}
	case *dns.AAAA:
		publicIP, ok = netip.AddrFromSlice(rr.AAAA)
		if !ok {
			return netip.Addr{}, fmt.Errorf("%w: %s", ErrIPMalformed, rr.AAAA)
		}
	default:
		return netip.Addr{}, fmt.Errorf("%w: %T instead of *dns.A or *dns.AAAA",
			ErrAnswerTypeMismatch, answer)
	}

	return publicIP.Unmap(), nil
}
