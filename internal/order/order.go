// Package order holds the intake payloads the studio accepts, their
// validation, and the totals the server computes for them.
package order

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/psxcreative/engine/internal/catalog"
)

// Submission types accepted by the intake endpoint.
const (
	TypeCreativeSubmission = "creative-factory-submission"
	TypeBootstrapStore     = "bootstrap-store-order"
	TypeMerchStore         = "merch-store-order"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationError reports every invalid field of a payload at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Project describes the client's project.
type Project struct {
	Name     string           `json:"name"`
	Chain    string           `json:"chain,omitempty"`
	Timeline catalog.Timeline `json:"timeline,omitempty"`
	Budget   float64          `json:"budget,omitempty"`
	Vision   string           `json:"vision,omitempty"`
}

// Contact is how the studio reaches the client.
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Socials  string `json:"socials,omitempty"`
}

// Selections are the configurator choices.
type Selections struct {
	Channels []catalog.ChannelID `json:"channels"`
	Content  []catalog.ContentID `json:"content"`
	Styles   []catalog.StyleID   `json:"styles"`
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

type problems map[string]string

func (p problems) require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		p[field] = msg
	}
}

func (p problems) add(field, msg string) {
	if _, ok := p[field]; !ok {
		p[field] = msg
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Fields: p}
}
