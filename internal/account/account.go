// Package account reads, validates and describes the DUIA account
// configuration file given as the program argument.
package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gotree"
	"gopkg.in/ini.v1"
)

const sectionName = "duia"

// Settings holds the DUIA account data for one run: the hostnames
// sharing the account password, the address families to update and
// the path of the last known addresses cache file.
type Settings struct {
	// Hostnames are the hostnames to keep updated, all
	// authenticated with the same account password.
	Hostnames []string
	// Password is the MD5 hash of the account password.
	Password string
	// CachePath is the file path of the JSON cache of the
	// last published addresses.
	CachePath string
	// IPv4 enables updating A records.
	IPv4 *bool
	// IPv6 enables updating AAAA records.
	IPv6 *bool
	// Timeout is the HTTP timeout for echo and update requests.
	Timeout time.Duration
}

var (
	ErrSectionMissing = errors.New("section is missing")
	ErrValueNotValid  = errors.New("value is not valid")
)

// Read parses the INI account file at the path given.
// Malformed boolean values and malformed or non-positive timeout
// values are returned as errors, so an explicitly bad value never
// gets silently replaced by a default; missing keys are left for
// Validate to report.
func Read(filepath string) (settings Settings, err error) {
	iniFile, err := ini.Load(filepath)
	if err != nil {
		return settings, fmt.Errorf("loading account file: %w", err)
	}

	section, err := iniFile.GetSection(sectionName)
	if err != nil {
		return settings, fmt.Errorf("%w: [%s] in account file",
			ErrSectionMissing, sectionName)
	}

	settings.Hostnames = strings.Fields(section.Key("hostname").String())
	settings.Password = section.Key("password").String()
	settings.CachePath = section.Key("cache").String()

	settings.IPv4, err = readOptionalBool(section, "ipv4")
	if err != nil {
		return settings, err
	}

	settings.IPv6, err = readOptionalBool(section, "ipv6")
	if err != nil {
		return settings, err
	}

	if section.HasKey("timeout") {
		seconds, err := section.Key("timeout").Float64()
		if err != nil {
			return settings, fmt.Errorf("%w: timeout in [%s]: %q",
				ErrValueNotValid, sectionName, section.Key("timeout").String())
		}
		if seconds <= 0 {
			return settings, fmt.Errorf("%w: timeout in [%s] must be above 0: %s",
				ErrValueNotValid, sectionName, section.Key("timeout").String())
		}
		settings.Timeout = time.Duration(seconds * float64(time.Second))
	}

	return settings, nil
}

func readOptionalBool(section *ini.Section, keyName string) (
	value *bool, err error) {
	if !section.HasKey(keyName) {
		return nil, nil //nolint:nilnil
	}

	parsed, err := section.Key(keyName).Bool()
	if err != nil {
		return nil, fmt.Errorf("%w: %s boolean in [%s]: %q",
			ErrValueNotValid, keyName, sectionName,
			section.Key(keyName).String())
	}

	return &parsed, nil
}

func (s *Settings) SetDefaults() {
	s.IPv4 = gosettings.DefaultPointer(s.IPv4, false)
	s.IPv6 = gosettings.DefaultPointer(s.IPv6, false)
	const defaultTimeout = 10 * time.Second
	s.Timeout = gosettings.DefaultComparable(s.Timeout, defaultTimeout)
}

var (
	ErrHostnameNotSet     = errors.New("hostname is not set")
	ErrPasswordNotSet     = errors.New("password is not set")
	ErrCachePathNotSet    = errors.New("cache path is not set")
	ErrNoIPVersionEnabled = errors.New("at least one of ipv4 and ipv6 must be enabled")
	ErrTimeoutNotPositive = errors.New("timeout must be above 0")
)

func (s Settings) Validate() (err error) {
	switch {
	case len(s.Hostnames) == 0:
		return fmt.Errorf("%w: in section [%s]", ErrHostnameNotSet, sectionName)
	case s.Password == "":
		return fmt.Errorf("%w: in section [%s]", ErrPasswordNotSet, sectionName)
	case s.CachePath == "":
		return fmt.Errorf("%w: in section [%s]", ErrCachePathNotSet, sectionName)
	case !*s.IPv4 && !*s.IPv6:
		return fmt.Errorf("%w: in section [%s]", ErrNoIPVersionEnabled, sectionName)
	case s.Timeout <= 0:
		return fmt.Errorf("%w: %s", ErrTimeoutNotPositive, s.Timeout)
	}

	return nil
}

func (s Settings) String() string {
	return s.ToLinesNode().String()
}

func (s Settings) ToLinesNode() *gotree.Node {
	node := gotree.New("Account")

	childNode := node.Appendf("Hostnames")
	for _, hostname := range s.Hostnames {
		childNode.Appendf(hostname)
	}

	node.Appendf("Cache file: %s", s.CachePath)
	node.Appendf("IPv4 updates: %s", gosettings.BoolToYesNo(s.IPv4))
	node.Appendf("IPv6 updates: %s", gosettings.BoolToYesNo(s.IPv6))
	node.Appendf("HTTP timeout: %s", s.Timeout)
	return node
}
