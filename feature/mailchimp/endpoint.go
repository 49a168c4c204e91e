package mailchimp

import (
	"fmt"
	"net/url"
	"strings"

	"audience-sync/core/reconcile"
)

// ConfigError reports an invalid or missing connector setting.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mailchimp %s: %s", e.Setting, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return reconcile.ErrConfiguration
}

// DataCenter returns the routing segment of an API key: the text after the
// first '-'.
func DataCenter(apiKey string) (string, error) {
	if apiKey == "" {
		return "", &ConfigError{Setting: "api_key", Reason: "is required"}
	}
	i := strings.Index(apiKey, "-")
	if i < 0 || i == len(apiKey)-1 {
		return "", &ConfigError{Setting: "api_key", Reason: "has no data center suffix"}
	}
	return apiKey[i+1:], nil
}

// Endpoint builds resource URLs.
type Endpoint struct {
	base string
}

// NewEndpoint derives the API base from apiKey, or uses baseURL when set.
func NewEndpoint(apiKey, baseURL string) (Endpoint, error) {
	if baseURL != "" {
		if _, err := url.Parse(baseURL); err != nil {
			return Endpoint{}, &ConfigError{Setting: "base_url", Reason: err.Error()}
		}
		return Endpoint{base: strings.TrimRight(baseURL, "/")}, nil
	}

	dc, err := DataCenter(apiKey)
	if err != nil {
		return Endpoint{}, err
	}
	return Endpoint{base: fmt.Sprintf("https://%s.api.mailchimp.com/3.0", dc)}, nil
}

// Base returns the API root without trailing slash.
func (e Endpoint) Base() string {
	return e.base
}

// Lists is one page of the list collection.
func (e Endpoint) Lists(count, offset int) string {
	return fmt.Sprintf("%s/lists?count=%d&offset=%d", e.base, count, offset)
}

// Members is one page of the member collection of listID.
func (e Endpoint) Members(listID string, count, offset int) string {
	return fmt.Sprintf("%s?count=%d&offset=%d", e.MemberCollection(listID), count, offset)
}

// MemberCollection is the member collection of listID.
func (e Endpoint) MemberCollection(listID string) string {
	return fmt.Sprintf("%s/lists/%s/members", e.base, url.PathEscape(listID))
}

// Member addresses one member by id or lookup key.
func (e Endpoint) Member(listID, key string) string {
	return e.MemberCollection(listID) + "/" + url.PathEscape(key)
}

// MemberTags is the tags sub-resource of a member.
func (e Endpoint) MemberTags(listID, key string) string {
	return e.Member(listID, key) + "/tags"
}
