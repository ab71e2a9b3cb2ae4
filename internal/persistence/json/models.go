package json

import "encoding/json"

type dataModel map[string]hostRecord

// hostRecord is the persisted form of the last published addresses
// of one hostname. Unknown JSON fields are tolerated on read and
// dropped on rewrite.
type hostRecord struct {
	IPv4 string `json:"ipv4,omitempty"`
	IPv6 string `json:"ipv6,omitempty"`
}

func (r hostRecord) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		panic(err)
	}

	return string(b)
}
