// Package sanitize strips markup from user-entered text fields before they
// are submitted to the campaign service. Uses bluemonday's strict policy:
// campaign names and similar labels are plain text, never HTML.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// PlainText removes all HTML markup from s and collapses the result to
// trimmed plain text. Entities introduced by the stripping pass are decoded
// back so "AT&T" survives a round trip.
func PlainText(s string) string {
	stripped := getPolicy().Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
