package publicip

import (
	"net/http"

	"duiadns/pkg/publicip/dns"
	iphttp "duiadns/pkg/publicip/http"
)

type settings struct {
	// If both dns and http are enabled it will cycle between both of them.
	dns  DNSSettings
	http HTTPSettings
}

type DNSSettings struct {
	Enabled bool
	Options []dns.Option
}

type HTTPSettings struct {
	Enabled bool
	Client  *http.Client
	Options []iphttp.Option
}
