package config

import (
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Client struct {
	// UserAgent is sent with every HTTP request to the echo
	// services and the update endpoint.
	UserAgent string
}

func (c *Client) setDefaults() {
	c.UserAgent = gosettings.DefaultComparable(c.UserAgent, "DUIA-DNS-UPDATER/1.0")
}

func (c Client) Validate() (err error) {
	return nil
}

func (c Client) String() string {
	return c.toLinesNode().String()
}

func (c Client) toLinesNode() *gotree.Node {
	node := gotree.New("HTTP client")
	node.Appendf("User agent: %s", c.UserAgent)
	return node
}

func (c *Client) read(r *reader.Reader) {
	c.UserAgent = r.String("HTTP_USER_AGENT", reader.ForceLowercase(false))
}
