package mailchimp

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"

	"audience-sync/core/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrMissingID is returned for resources without a top-level id.
var ErrMissingID = errors.New("resource has no id")

// ExtractID returns the top-level id of a resource.
func ExtractID(resource map[string]any) (string, error) {
	id := utils.ToString(resource["id"])
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

// LookupKey returns the path segment addressing a member.
// Members looked up by email are addressed by the lowercase hex MD5 of the
// trimmed, lowercased address. Any other column passes key through.
func LookupKey(column, key string) string {
	f, ok := memberFields.Lookup(column)
	if !ok || f.IsSubValue() || f.RemoteName != "email_address" {
		return key
	}
	return SubscriberHash(key)
}

// SubscriberHash hashes an email address the way the API addresses members.
// Surrounding whitespace is trimmed before lowercasing, so " A@b.c" and
// "a@b.c" address the same member.
func SubscriberHash(email string) string {
	normalized := cases.Lower(language.Und).String(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
