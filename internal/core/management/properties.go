package management

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ottermq/sempctl/internal/core/semp"
)

// Connection property keys as supplied by the host.
const (
	PropVPN            = "VPN"
	PropMgmtURL        = "mgmt_url"
	PropMgmtUsername   = "mgmt_username"
	PropMgmtPassword   = "mgmt_password"
	PropBrowserTimeout = "browser_timeout"
	PropTopicAliases   = "topic_aliases"
)

const (
	DefaultVPN            = "default"
	DefaultBrowserTimeout = 250
	// MinBrowserTimeout is the smallest browser timeout, in milliseconds, the
	// broker accepts.
	MinBrowserTimeout = 250
)

// ConnectionProperties are the parameters a host supplies when opening a
// management context.
type ConnectionProperties struct {
	VPN          string
	MgmtURL      string
	MgmtUsername string
	MgmtPassword string
	// BrowserTimeout belongs to the messaging session; it is only validated here.
	BrowserTimeout int
	TopicAliases   bool
}

// ParseConnectionProperties reads host supplied key/value properties. Missing
// VPN and browser timeout fall back to their defaults.
func ParseConnectionProperties(raw map[string]string) (ConnectionProperties, error) {
	props := ConnectionProperties{
		VPN:            DefaultVPN,
		MgmtURL:        strings.TrimSpace(raw[PropMgmtURL]),
		MgmtUsername:   raw[PropMgmtUsername],
		MgmtPassword:   raw[PropMgmtPassword],
		BrowserTimeout: DefaultBrowserTimeout,
	}
	if v := strings.TrimSpace(raw[PropVPN]); v != "" {
		props.VPN = v
	}
	if v := strings.TrimSpace(raw[PropBrowserTimeout]); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil {
			return ConnectionProperties{}, &semp.ConfigurationError{
				Field:  PropBrowserTimeout,
				Value:  v,
				Reason: "not an integer",
				Hint:   "browser timeout is given in milliseconds",
			}
		}
		props.BrowserTimeout = timeout
	}
	if v := strings.TrimSpace(raw[PropTopicAliases]); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return ConnectionProperties{}, &semp.ConfigurationError{
				Field:  PropTopicAliases,
				Value:  v,
				Reason: "not a boolean",
			}
		}
		props.TopicAliases = enabled
	}
	return props, props.Validate()
}

func (p ConnectionProperties) Validate() error {
	if strings.TrimSpace(p.VPN) == "" {
		return &semp.ConfigurationError{
			Field:  PropVPN,
			Value:  p.VPN,
			Reason: "message VPN is required",
			Hint:   "use " + DefaultVPN + " for the default VPN",
		}
	}

	u, err := url.Parse(p.MgmtURL)
	if err != nil || p.MgmtURL == "" {
		return &semp.ConfigurationError{
			Field:  PropMgmtURL,
			Value:  p.MgmtURL,
			Reason: "not a valid URL",
			Hint:   "expected something like http://broker:8080",
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &semp.ConfigurationError{
			Field:  PropMgmtURL,
			Value:  p.MgmtURL,
			Reason: "scheme must be http or https",
			Hint:   "expected something like http://broker:8080",
		}
	}
	if u.Host == "" {
		return &semp.ConfigurationError{
			Field:  PropMgmtURL,
			Value:  p.MgmtURL,
			Reason: "missing host",
			Hint:   "expected something like http://broker:8080",
		}
	}

	if p.BrowserTimeout < MinBrowserTimeout {
		return &semp.ConfigurationError{
			Field:  PropBrowserTimeout,
			Value:  strconv.Itoa(p.BrowserTimeout),
			Reason: "must be at least " + strconv.Itoa(MinBrowserTimeout) + "ms",
		}
	}
	return nil
}
